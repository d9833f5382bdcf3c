// Command imgfscmd is a CLI front end for the imgfs package.
//
// Usage:
//
//	imgfscmd list   <file>
//	imgfscmd create <file> [-max_files N] [-thumb_res W H] [-small_res W H]
//	imgfscmd read   <file> <img_id> [orig|small|thumb]
//	imgfscmd insert <file> <img_id> <image_path>
//	imgfscmd delete <file> <img_id>
//	imgfscmd help
package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/behrlich/imgfs"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		logf("%s", usage())
		return exitCode(imgfs.ErrNotEnoughArguments)
	}

	var err error
	switch args[0] {
	case "list":
		err = cmdList(args[1:])
	case "create":
		err = cmdCreate(args[1:])
	case "read":
		err = cmdRead(args[1:])
	case "insert":
		err = cmdInsert(args[1:])
	case "delete":
		err = cmdDelete(args[1:])
	case "help", "-h", "--help":
		fmt.Println(usage())
		return 0
	default:
		err = fmt.Errorf("%w: unknown command %q", imgfs.ErrInvalidArgument, args[0])
	}

	if err != nil {
		logf("%v", err)
		return exitCode(err)
	}
	return 0
}

func usage() string {
	return `imgfscmd:
  list   <file>
  create <file> [-max_files N] [-thumb_res W H] [-small_res W H]
  read   <file> <img_id> [orig|small|thumb]
  insert <file> <img_id> <image_path>
  delete <file> <img_id>
  help`
}

func cmdList(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: usage: imgfscmd list <file>", imgfs.ErrNotEnoughArguments)
	}
	s, err := imgfs.Open(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	return s.List(os.Stdout, imgfs.Text)
}

func cmdCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	maxFiles := fs.Uint32("max_files", imgfs.DefaultMaxFiles, "metadata table capacity")
	thumbRes := fs.UintSlice("thumb_res", []uint{imgfs.DefaultThumbWidth, imgfs.DefaultThumbHeight}, "thumbnail width,height")
	smallRes := fs.UintSlice("small_res", []uint{imgfs.DefaultSmallWidth, imgfs.DefaultSmallHeight}, "small width,height")

	if len(args) < 1 {
		return fmt.Errorf("%w: usage: imgfscmd create <file> [-max_files N] [-thumb_res W,H] [-small_res W,H]", imgfs.ErrNotEnoughArguments)
	}
	file := args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %v", imgfs.ErrInvalidArgument, err)
	}

	cfg := imgfs.Config{MaxFiles: *maxFiles}
	tr, err := resPair(*thumbRes, imgfs.MaxThumbWidth, imgfs.MaxThumbHeight)
	if err != nil {
		return err
	}
	cfg.ThumbRes = tr
	sr, err := resPair(*smallRes, imgfs.MaxSmallWidth, imgfs.MaxSmallHeight)
	if err != nil {
		return err
	}
	cfg.SmallRes = sr

	s, err := imgfs.Create(file, cfg)
	if err != nil {
		return err
	}
	return s.Close()
}

func resPair(vals []uint, maxW, maxH uint32) ([2]uint32, error) {
	if len(vals) != 2 {
		return [2]uint32{}, fmt.Errorf("%w: resolution flag requires exactly two values", imgfs.ErrInvalidArgument)
	}
	w, h := uint32(vals[0]), uint32(vals[1])
	if w == 0 || h == 0 || w > maxW || h > maxH {
		return [2]uint32{}, fmt.Errorf("%w: resolution %dx%d out of range (max %dx%d)", imgfs.ErrInvalidArgument, w, h, maxW, maxH)
	}
	return [2]uint32{w, h}, nil
}

func cmdRead(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: usage: imgfscmd read <file> <img_id> [orig|small|thumb]", imgfs.ErrNotEnoughArguments)
	}
	resolution := imgfs.OrigRes
	if len(args) >= 3 {
		var err error
		resolution, err = parseResName(args[2])
		if err != nil {
			return err
		}
	}

	s, err := imgfs.Open(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	buf, err := s.Read(args[1], resolution)
	if err != nil {
		return err
	}

	outPath := args[1] + resSuffix(resolution) + ".jpg"
	if err := os.WriteFile(outPath, buf, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", imgfs.ErrIO, outPath, err)
	}
	fmt.Println(outPath)
	return nil
}

func parseResName(name string) (int, error) {
	switch name {
	case "orig", "original":
		return imgfs.OrigRes, nil
	case "small":
		return imgfs.SmallRes, nil
	case "thumb", "thumbnail":
		return imgfs.ThumbRes, nil
	default:
		return 0, fmt.Errorf("%w: unknown resolution %q", imgfs.ErrResolutions, name)
	}
}

func resSuffix(resolution int) string {
	switch resolution {
	case imgfs.ThumbRes:
		return "_thumb"
	case imgfs.SmallRes:
		return "_small"
	default:
		return "_orig"
	}
}

func cmdInsert(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: usage: imgfscmd insert <file> <img_id> <image_path>", imgfs.ErrNotEnoughArguments)
	}
	buf, err := os.ReadFile(args[2])
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", imgfs.ErrIO, args[2], err)
	}

	s, err := imgfs.Open(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Insert(buf, args[1])
}

func cmdDelete(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: usage: imgfscmd delete <file> <img_id>", imgfs.ErrNotEnoughArguments)
	}
	s, err := imgfs.Open(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Delete(args[1])
}

// exitCode maps a sentinel error kind to a stable process exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, imgfs.ErrInvalidArgument):
		return 2
	case errors.Is(err, imgfs.ErrNotEnoughArguments):
		return 3
	case errors.Is(err, imgfs.ErrIO):
		return 4
	case errors.Is(err, imgfs.ErrOutOfMemory):
		return 5
	case errors.Is(err, imgfs.ErrImageNotFound):
		return 6
	case errors.Is(err, imgfs.ErrDuplicateID):
		return 7
	case errors.Is(err, imgfs.ErrStoreFull):
		return 8
	case errors.Is(err, imgfs.ErrResolutions):
		return 9
	case errors.Is(err, imgfs.ErrInvalidImgID):
		return 10
	case errors.Is(err, imgfs.ErrImglib):
		return 11
	default:
		return 1
	}
}

func logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "imgfscmd: "+format+"\n", args...)
}
