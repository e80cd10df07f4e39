// File: cmd/ossgate/storage_cmd.go
package main

import (
	"fmt"
	"os"
	"ossgate/internal/flags"
	"ossgate/internal/service"
	"ossgate/internal/ui/browser"
	"ossgate/pkg/formatter"
	"ossgate/pkg/storage"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type storageFlags struct {
	profilesList []string
	profile      string
	bucket       string
	prefix       string
	delimiter    string
	maxKeys      int32
	path         string
	contentType  string
	dest         string
	output       string
	force        bool
}

func addTargetFlags(cmd *cobra.Command, f *storageFlags) {
	cmd.Flags().StringVarP(&f.profile, flags.Profile, flags.ProfileShort, "", "Profile to use (required when several are configured)")
	cmd.Flags().StringVarP(&f.bucket, flags.Bucket, flags.BucketShort, "", "Bucket to use instead of the profile's bucket")
}

func addOutputFlag(cmd *cobra.Command, f *storageFlags) {
	cmd.Flags().StringVarP(&f.output, flags.Output, flags.OutputShort, formatter.OutputTable, "Output format: table, json or yaml")
}

func newBucketsCmd() *cobra.Command {
	cmdFlags := storageFlags{}

	bucketsCmd := &cobra.Command{
		Use:   "buckets",
		Short: "List buckets",
		Long: `Lists the buckets of every configured profile. Use the --profiles flag to
query only some of them (e.g., --profiles prod,backup). A failing profile is
reported without hiding the buckets of the others.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			profiles, err := app.resolveProfiles(cmdFlags.profilesList)
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured. Use 'ossgate config set profiles.<name>.provider <provider>'.")
				return nil
			}

			results := app.StorageService.ListAllBuckets(cmd.Context(), profiles)
			if cmdFlags.output != formatter.OutputTable {
				return formatter.Encode(cmd.OutOrStdout(), cmdFlags.output, results)
			}
			return printBucketTable(cmd, app.StorageFormatter, results)
		},
	}
	bucketsCmd.Flags().StringSliceVarP(&cmdFlags.profilesList, flags.Profiles, flags.ProfilesShort, []string{}, "Profiles to query (comma-separated). Defaults to all configured profiles.")
	addOutputFlag(bucketsCmd, &cmdFlags)
	return bucketsCmd
}

func printBucketTable(cmd *cobra.Command, f *formatter.StorageFormatter, results []service.ProfileBuckets) error {
	var rows []formatter.BucketRow
	failed := 0
	for _, r := range results {
		if !r.Result.Success {
			failed++
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.FormatError(fmt.Sprintf("profile %s: %s", r.Profile, r.Result.Error)))
			continue
		}
		for _, b := range *r.Result.Data {
			rows = append(rows, formatter.BucketRow{Profile: r.Profile, Provider: r.Provider, Bucket: b})
		}
	}

	if len(rows) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), f.FormatBucketList(rows))
	} else if failed < len(results) {
		fmt.Fprintln(cmd.OutOrStdout(), "No buckets found.")
	}

	if failed == len(results) {
		return fmt.Errorf("bucket listing failed for every requested profile")
	}
	return nil
}

func newLsCmd() *cobra.Command {
	cmdFlags := storageFlags{}

	lsCmd := &cobra.Command{
		Use:   "ls [prefix]",
		Short: "List objects and folders",
		Long: `Lists the objects and folders directly under a prefix. Folders are derived from
the delimiter (default "/") and listed first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			cfg, err := app.profileConfig(cmdFlags.profile, cmdFlags.bucket)
			if err != nil {
				return err
			}

			prefix := cmdFlags.prefix
			if len(args) == 1 {
				prefix = args[0]
			}
			params := &storage.ListParams{Prefix: prefix, Delimiter: cmdFlags.delimiter, MaxKeys: cmdFlags.maxKeys}

			result := app.StorageService.ListObjects(cmd.Context(), cfg, params)
			if err := resultError(result); err != nil {
				return err
			}

			if cmdFlags.output != formatter.OutputTable {
				return formatter.Encode(cmd.OutOrStdout(), cmdFlags.output, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), app.StorageFormatter.FormatItemList(cfg.Bucket, prefix, *result.Data))
			return nil
		},
	}
	addTargetFlags(lsCmd, &cmdFlags)
	addOutputFlag(lsCmd, &cmdFlags)
	lsCmd.Flags().StringVar(&cmdFlags.prefix, flags.Prefix, "", "Key prefix to list under")
	lsCmd.Flags().StringVar(&cmdFlags.delimiter, flags.Delimiter, storage.DefaultDelimiter, "Delimiter that groups keys into folders")
	lsCmd.Flags().Int32Var(&cmdFlags.maxKeys, flags.MaxKeys, 0, "Maximum number of keys to return (0 uses the provider default)")
	return lsCmd
}

func newPutCmd() *cobra.Command {
	cmdFlags := storageFlags{}

	putCmd := &cobra.Command{
		Use:   "put [file]",
		Short: "Upload a local file",
		Long: `Uploads a local file. The object key is the file name, placed under --path
when given. The content type is detected unless --content-type is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			cfg, err := app.profileConfig(cmdFlags.profile, cmdFlags.bucket)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading '%s': %w", args[0], err)
			}

			result := app.StorageService.Upload(cmd.Context(), cfg, storage.UploadParams{
				FileName:    filepath.Base(args[0]),
				FileData:    data,
				ContentType: cmdFlags.contentType,
				Path:        cmdFlags.path,
			})
			if err := resultError(result); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded '%s' to %s (%s).\n", *result.Data, cfg.Bucket, storage.FormatBytes(int64(len(data))))
			return nil
		},
	}
	addTargetFlags(putCmd, &cmdFlags)
	putCmd.Flags().StringVar(&cmdFlags.path, flags.Path, "", "Folder to upload into")
	putCmd.Flags().StringVar(&cmdFlags.contentType, flags.ContentType, "", "Content type to store with the object")
	return putCmd
}

func newGetCmd() *cobra.Command {
	cmdFlags := storageFlags{}

	getCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Download an object",
		Long:  `Downloads an object to --dest, which defaults to the key's base name. Use --dest - to write to stdout.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			cfg, err := app.profileConfig(cmdFlags.profile, cmdFlags.bucket)
			if err != nil {
				return err
			}

			result := app.StorageService.Download(cmd.Context(), cfg, storage.DownloadParams{Key: args[0]})
			if err := resultError(result); err != nil {
				return err
			}
			data := *result.Data

			dest := cmdFlags.dest
			if dest == "" {
				dest = filepath.Base(strings.TrimSuffix(args[0], "/"))
			}
			if dest == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(dest, data, 0644); err != nil {
				return fmt.Errorf("error writing '%s': %w", dest, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded '%s' to %s (%s).\n", args[0], dest, storage.FormatBytes(int64(len(data))))
			return nil
		},
	}
	addTargetFlags(getCmd, &cmdFlags)
	getCmd.Flags().StringVar(&cmdFlags.dest, flags.Dest, "", "Local file to write")
	return getCmd
}

func newRmCmd() *cobra.Command {
	cmdFlags := storageFlags{}

	rmCmd := &cobra.Command{
		Use:   "rm [key]",
		Short: "Delete an object",
		Long:  `Deletes an object. You will be asked to type the key unless --force is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := args[0]
			cfg, err := app.profileConfig(cmdFlags.profile, cmdFlags.bucket)
			if err != nil {
				return err
			}

			if !cmdFlags.force {
				message := fmt.Sprintf("You are about to delete '%s' from bucket '%s'. This cannot be undone.", key, cfg.Bucket)
				confirmed, err := app.Prompter.Confirm(message, key)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
					return nil
				}
			}

			result := app.StorageService.Delete(cmd.Context(), cfg, storage.DeleteParams{Key: key})
			if err := resultError(result); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted '%s' from %s.\n", *result.Data, cfg.Bucket)
			return nil
		},
	}
	addTargetFlags(rmCmd, &cmdFlags)
	rmCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Delete without asking for confirmation")
	return rmCmd
}

func newMkdirCmd() *cobra.Command {
	cmdFlags := storageFlags{}

	mkdirCmd := &cobra.Command{
		Use:   "mkdir [name]",
		Short: "Create a folder",
		Long:  `Creates a folder marker object named <path>/<name>/.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			cfg, err := app.profileConfig(cmdFlags.profile, cmdFlags.bucket)
			if err != nil {
				return err
			}

			result := app.StorageService.CreateFolder(cmd.Context(), cfg, storage.CreateFolderParams{
				FolderName: args[0],
				Path:       cmdFlags.path,
			})
			if err := resultError(result); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created folder '%s' in %s.\n", *result.Data, cfg.Bucket)
			return nil
		},
	}
	addTargetFlags(mkdirCmd, &cmdFlags)
	mkdirCmd.Flags().StringVar(&cmdFlags.path, flags.Path, "", "Parent folder")
	return mkdirCmd
}

func newBrowseCmd() *cobra.Command {
	cmdFlags := storageFlags{}

	browseCmd := &cobra.Command{
		Use:   "browse [prefix]",
		Short: "Browse a bucket interactively",
		Long:  `Opens an interactive browser on a bucket. Enter opens a folder, backspace goes up, r refreshes and q quits.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			cfg, err := app.profileConfig(cmdFlags.profile, cmdFlags.bucket)
			if err != nil {
				return err
			}
			if cfg.Bucket == "" {
				return fmt.Errorf("profile has no bucket; pass one with --bucket")
			}

			prefix := ""
			if len(args) == 1 {
				prefix = strings.TrimPrefix(args[0], "/")
				if prefix != "" && !strings.HasSuffix(prefix, "/") {
					prefix += "/"
				}
			}

			app.Logger.Debug("Starting browser", "bucket", cfg.Bucket, "prefix", prefix)
			return browser.Run(cmd.Context(), app.Gateway, cfg, prefix, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	addTargetFlags(browseCmd, &cmdFlags)
	return browseCmd
}
