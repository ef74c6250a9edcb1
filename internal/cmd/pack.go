package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/vfxtex/internal/texpack"
	"github.com/MeKo-Tech/vfxtex/internal/texture"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Inspect texture packs",
	Long:  "Inspect and unpack SQLite texture packs written with --pack.",
}

var packListCmd = &cobra.Command{
	Use:   "list FILE",
	Short: "List the textures in a pack",
	Args:  cobra.ExactArgs(1),
	RunE:  runPackList,
}

var packExtractCmd = &cobra.Command{
	Use:   "extract FILE NAME",
	Short: "Write one texture of a pack to the output directory",
	Args:  cobra.ExactArgs(2),
	RunE:  runPackExtract,
}

var packSheetCmd = &cobra.Command{
	Use:   "sheet FILE",
	Short: "Shelf-pack every texture of a pack onto one contact sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runPackSheet,
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.AddCommand(packListCmd, packExtractCmd, packSheetCmd)

	packSheetCmd.Flags().Int("max-width", 4096, "Maximum sheet width in pixels")
	bindFlags(packSheetCmd, "pack_sheet")
}

func runPackList(cmd *cobra.Command, args []string) error {
	r, err := texpack.OpenReader(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	meta, err := r.Metadata()
	if err != nil {
		return err
	}
	entries, err := r.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s %s): %d textures\n", meta.Name, meta.Generator, meta.Version, meta.Count)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSIZE\tGRID\tSEED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%dx%d\t%d\n", e.Name, e.Kind, e.Width, e.Height, e.Cols, e.Rows, e.Seed)
	}
	return tw.Flush()
}

func runPackExtract(cmd *cobra.Command, args []string) error {
	r, err := texpack.OpenReader(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	e, err := r.ReadTexture(args[1])
	if err != nil {
		return err
	}
	img, err := texture.DecodePNG(e.Data)
	if err != nil {
		return err
	}

	path := texture.OutputPath(viper.GetString("output"), viper.GetString("name"), filepath.Base(e.Name))
	res, err := texture.WritePNG(path, img)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", res.Path)
	return nil
}

func runPackSheet(cmd *cobra.Command, args []string) error {
	r, err := texpack.OpenReader(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	listed, err := r.List()
	if err != nil {
		return err
	}
	entries := make([]texpack.Entry, 0, len(listed))
	for _, l := range listed {
		e, err := r.ReadTexture(l.Name)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}

	gen, closePack, err := newGenerator("pack_sheet", false)
	if err != nil {
		return err
	}
	res, err := gen.Sheet(entries, viper.GetInt("pack_sheet.max_width"), viper.GetString("name"))
	if cerr := closePack(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to build contact sheet: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s (%dx%d, %d textures)\n", res.Path, res.Width, res.Height, len(entries))
	return nil
}
