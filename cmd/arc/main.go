// Command arc is a small driver over the arc library: sniff an archive's
// format, list its member paths, or convert it between formats.
//
//	arc detect archive.bin
//	arc list archive.tar.gz
//	arc convert archive.tar.gz archive.zip
//	arc convert --to tar.zst in.zip out.bin
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/meigma/arc"
	"github.com/meigma/arc/filter"
	"github.com/meigma/arc/tarfmt"
	"github.com/meigma/arc/zipfmt"
)

type config struct {
	to      string
	verbose bool
}

func main() {
	cfg := config{}
	pflag.StringVar(&cfg.to, "to", "", "target format for convert (tar, tar.gz, tar.zst, tar.lz4, zip); default from output extension")
	pflag.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging")
	pflag.Usage = usage
	pflag.Parse()

	args := pflag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var opts []arc.Option
	if cfg.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, arc.WithLogger(logger))
	}

	var err error
	switch args[0] {
	case "detect":
		err = runDetect(args[1:])
	case "list":
		err = runList(args[1:], opts)
	case "convert":
		err = runConvert(args[1:], cfg.to, opts)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: arc [flags] detect|list|convert <args>")
	pflag.PrintDefaults()
}

func runDetect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("detect: want one archive argument, got %d", len(args))
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	fmt.Println(arc.Detect(data))
	return nil
}

func runList(args []string, opts []arc.Option) error {
	if len(args) != 1 {
		return fmt.Errorf("list: want one archive argument, got %d", len(args))
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	a, err := arc.Open(data, opts...)
	if err != nil {
		return err
	}
	for m := range a.Members() {
		path := m.Path()
		if m.IsDir() {
			path += "/"
		}
		fmt.Println(path)
	}
	return nil
}

func runConvert(args []string, to string, opts []arc.Option) error {
	if len(args) != 2 {
		return fmt.Errorf("convert: want source and destination arguments, got %d", len(args))
	}
	src, dst := args[0], args[1]
	if to == "" {
		to = formatFromName(dst)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	in, err := arc.Open(data, opts...)
	if err != nil {
		return err
	}

	out, err := newTarget(to, opts)
	if err != nil {
		return err
	}
	if err := copyMembers(in, out); err != nil {
		return err
	}

	encoded, err := out.Serialize()
	if err != nil {
		return err
	}
	return os.WriteFile(dst, encoded, 0o644)
}

// copyMembers re-inserts every directory and file of in into out. Members
// are cloned so the two trees stay independent.
func copyMembers(in, out *arc.Archive) error {
	for d := range in.Directories() {
		if d.Path() == "" {
			continue
		}
		nd, err := out.AddDirectory(d.Path())
		if err != nil {
			return err
		}
		nd.ModTime = d.ModTime
		nd.Tar = d.Tar
	}
	for f := range in.Files() {
		if err := out.AddFile(f.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func newTarget(format string, opts []arc.Option) (*arc.Archive, error) {
	switch format {
	case "tar":
		return arc.New(tarfmt.New(), opts...), nil
	case "tar.gz", "tgz":
		return arc.New(tarfmt.New(), append([]arc.Option{arc.WithFilter(filter.Gzip{})}, opts...)...), nil
	case "tar.zst":
		return arc.New(tarfmt.New(), append([]arc.Option{arc.WithFilter(filter.Zstd{})}, opts...)...), nil
	case "tar.lz4":
		return arc.New(tarfmt.New(), append([]arc.Option{arc.WithFilter(filter.LZ4{})}, opts...)...), nil
	case "zip":
		return arc.New(zipfmt.New(), opts...), nil
	default:
		return nil, fmt.Errorf("unknown target format %q", format)
	}
}

func formatFromName(name string) string {
	switch {
	case strings.HasSuffix(name, ".zip"):
		return "zip"
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return "tar.gz"
	case strings.HasSuffix(name, ".tar.zst"):
		return "tar.zst"
	case strings.HasSuffix(name, ".tar.lz4"):
		return "tar.lz4"
	default:
		return "tar"
	}
}
