// Command qrtool encodes text into QR codes and decodes QR codes from images.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"github.com/sirupsen/logrus"

	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/internal/config"
	"github.com/louisgthier/image-processing/internal/logging"
	"github.com/louisgthier/image-processing/qrcode"
	"github.com/louisgthier/image-processing/qrcode/encoder"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var formats = []string{"png", "bmp", "ascii", "utf8"}

// errUsage marks errors that should print the usage text.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// cli carries the streams and settings shared by the subcommands.
type cli struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	cfg            *config.Config
	log            *logrus.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		cfgPath string
		verbose bool
		help    bool
	)
	set := getopt.New()
	set.SetProgram("qrtool")
	set.SetParameters("encode|decode [args ...]")
	set.Flag(&cfgPath, 'c', "HCL configuration file", "file")
	set.Flag(&verbose, 'v', "log debug information to standard error")
	set.Flag(&help, 'h', "show this help")

	usage := func(w io.Writer) {
		set.PrintUsage(w)
		fmt.Fprint(w, `
Subcommands:
  encode [-i] [-8] [-s scale] [-m margin] [-t png|bmp|ascii|utf8] [-o file] [text ...]
  decode file ...
`)
	}

	if err := set.Getopt(args, nil); err != nil {
		fmt.Fprintln(stderr, err)
		usage(stderr)
		return exitUsage
	}
	if help {
		usage(stdout)
		return exitOK
	}
	rest := set.Args()
	if len(rest) == 0 {
		usage(stderr)
		return exitUsage
	}

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, err := logging.New(level, cfg.Log.Format, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr, cfg: cfg, log: log}
	switch rest[0] {
	case "encode":
		err = c.encode(rest)
	case "decode":
		err = c.decode(rest)
	default:
		err = fmt.Errorf("%w: unknown subcommand %q", errUsage, rest[0])
	}
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		usage(stderr)
		return exitUsage
	default:
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
}

func (c *cli) encode(args []string) error {
	var (
		foldCase bool
		byteMode bool
		scale    = c.cfg.Encode.Scale
		margin   = c.cfg.Encode.QuietZone
		output   string
	)
	set := getopt.New()
	set.SetProgram("qrtool encode")
	set.SetParameters("[text ...]")
	set.Flag(&foldCase, 'i', "convert lowercase letters to uppercase")
	set.Flag(&byteMode, '8', "encode in byte mode (ISO-8859-1)")
	set.Flag(&scale, 's', "pixels per module", "scale")
	set.Flag(&margin, 'm', "quiet zone in modules", "margin")
	set.Flag(&output, 'o', `output file, or "-" for standard output`, "file")
	format := set.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+`; if no -o is given and standard `+
		`output is a TTY, default is utf8, otherwise png`, "type")
	if err := set.Getopt(args, nil); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if scale < 1 {
		return fmt.Errorf("%w: scale must be at least 1", errUsage)
	}
	if margin < 0 {
		return fmt.Errorf("%w: margin must not be negative", errUsage)
	}

	opts := c.cfg.EncodeOptions()
	opts.Scale = scale
	opts.Margin = &margin
	if foldCase {
		opts.FoldCase = true
	}
	if byteMode {
		opts.Mode = "byte"
	}
	if output == "-" {
		output = ""
	}
	if *format == "" {
		if output == "" && isTerminal(c.stdout) {
			*format = "utf8"
		} else {
			*format = "png"
		}
	}

	var text string
	if rest := set.Args(); len(rest) != 0 {
		text = strings.Join(rest, " ")
	} else {
		b, err := io.ReadAll(c.stdin)
		if err != nil {
			return err
		}
		text, _ = strings.CutSuffix(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n")
	}

	sym, err := qrcode.NewWriterWithLogger(c.log).EncodeSymbol(text, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := writeSymbol(&buf, sym, *format, opts); err != nil {
		return err
	}
	if output == "" {
		_, err = c.stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(output, buf.Bytes(), 0o666)
}

func writeSymbol(w io.Writer, sym *encoder.Symbol, format string, opts *imgproc.EncodeOptions) error {
	switch format {
	case "png":
		return imgproc.RenderMatrix(sym.Matrix, opts.ScaleOrDefault(), opts.MarginOrDefault()).EncodePNG(w)
	case "bmp":
		return imgproc.RenderMatrix(sym.Matrix, opts.ScaleOrDefault(), opts.MarginOrDefault()).EncodeBMP(w)
	case "ascii":
		_, err := io.WriteString(w, imgproc.ScaleMatrix(sym.Matrix, 1, opts.MarginOrDefault()).StringWithChars("##", "  "))
		return err
	case "utf8":
		return halfBlocks(w, imgproc.ScaleMatrix(sym.Matrix, 1, opts.MarginOrDefault()))
	}
	return fmt.Errorf("%w: unknown format %q", errUsage, format)
}

// halfBlocks draws two module rows per text line. Dark modules are drawn as
// blank cells so that the symbol reads correctly on a dark terminal.
func halfBlocks(w io.Writer, m *bitutil.BitMatrix) error {
	var sb strings.Builder
	for y := 0; y < m.Height(); y += 2 {
		for x := 0; x < m.Width(); x++ {
			top := m.Get(x, y)
			bottom := y+1 < m.Height() && m.Get(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune(' ')
			case top:
				sb.WriteRune('▄')
			case bottom:
				sb.WriteRune('▀')
			default:
				sb.WriteRune('█')
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (c *cli) decode(args []string) error {
	set := getopt.New()
	set.SetProgram("qrtool decode")
	set.SetParameters("file ...")
	if err := set.Getopt(args, nil); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	files := set.Args()
	if len(files) == 0 {
		return fmt.Errorf("%w: no image files given", errUsage)
	}

	reader := qrcode.NewReaderWithLogger(c.log)
	opts := c.cfg.DecodeOptions()
	failed := 0
	for _, path := range files {
		img, err := imgproc.Open(path)
		if err != nil {
			fmt.Fprintf(c.stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		res, err := reader.Decode(img, opts)
		if err != nil {
			if errors.Is(err, imgproc.ErrNotFound) {
				fmt.Fprintf(c.stderr, "%s: no QR code found\n", path)
			} else {
				fmt.Fprintf(c.stderr, "%s: %v\n", path, err)
			}
			failed++
			continue
		}
		if len(files) > 1 {
			fmt.Fprintf(c.stdout, "%s: ", path)
		}
		fmt.Fprintln(c.stdout, res.Text)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
