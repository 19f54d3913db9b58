package main

import (
	"context"
	"fmt"
	"image/gif"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/codegangsta/cli"
	"github.com/kevin-cantwell/opendot"
	"github.com/muesli/termenv"
)

func init() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func main() {
	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "opendot"
	app.Usage = "A command-line tool for rendering images as density-ordered character art."
	app.UsageText = "1) opendot [options] [file|url]\n" +
		/*      */ "   2) opendot [options] < [file]"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "columns,w",
			Usage: "`COLUMNS` is the maximum width of the output in characters. Defaults to the terminal width.",
		},
		cli.Float64Flag{
			Name:  "vertical-scale,y",
			Usage: "`SCALE` corrects for tall character cells. 2 keeps the image's aspect ratio in rows and columns; larger values produce fewer rows.",
			Value: opendot.DefaultVerticalScale,
		},
		cli.IntFlag{
			Name:  "contrast,c",
			Usage: "`CONTRAST` = 0 gives the original image. CONTRAST = -100 flattens to grey. CONTRAST = 100 gives maximum contrast.",
		},
		cli.IntFlag{
			Name:  "brightness,b",
			Usage: "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives a solid dark image. BRIGHTNESS = 100 gives a solid light image.",
		},
		cli.StringFlag{
			Name:  "charset",
			Usage: "`NAME` of the character palette: " + strings.Join(opendot.CharsetNames(), ", ") + ".",
			Value: "standard",
		},
		cli.StringFlag{
			Name:  "chars",
			Usage: "`CHARS` is a custom palette ordered from least to most ink. Used when longer than one character.",
		},
		cli.BoolFlag{
			Name:  "invert,i",
			Usage: "Swaps the dark and light ends of the palette.",
		},
		cli.BoolFlag{
			Name:  "color",
			Usage: "Colors every character with the color of its cell. Disables dithering.",
		},
		cli.BoolFlag{
			Name:  "dither,d",
			Usage: "Applies Floyd-Steinberg error diffusion before choosing characters.",
		},
		cli.BoolFlag{
			Name:  "no-smooth",
			Usage: "Samples the image with nearest neighbor instead of a smoothing filter.",
		},
		cli.StringFlag{
			Name:  "resampler",
			Usage: "`RESAMPLER` used to shrink the image: imaging or nfnt.",
			Value: "imaging",
		},
		cli.StringFlag{
			Name:  "format,f",
			Usage: "`FORMAT` of the output: text, ansi, html or png.",
			Value: "ansi",
		},
		cli.Float64Flag{
			Name:  "font-size",
			Usage: "`SIZE` in pixels of each character in png output. 0 uses a 7x13 bitmap font.",
			Value: 12,
		},
		cli.BoolFlag{
			Name:  "transparent",
			Usage: "Leaves the png background transparent.",
		},
		cli.StringFlag{
			Name:  "out,o",
			Usage: "`FILE` to write to instead of stdout.",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "`FILE` with a YAML preset. Flags override it.",
		},
		cli.BoolFlag{
			Name:  "play,p",
			Usage: "Animates gifs in the terminal. CTRL-C to quit.",
		},
		cli.IntFlag{
			Name:  "mjpeg",
			Usage: "Treats the input as an MJPEG stream and animates it at `FPS`.",
		},
		cli.BoolFlag{
			Name:  "verbose,v",
			Usage: "Logs what is being rendered to stderr.",
		},
	}
	app.Action = func(c *cli.Context) error {
		logger := log.New(ioutil.Discard, "opendot: ", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		cfg, err := loadConfig(c, logger)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		reader, closer, err := openInput(c.Args().First())
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer closer.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = withOutput(c.String("out"), func(out io.Writer) error {
			enc, err := newEncoder(c, out, cfg)
			if err != nil {
				return err
			}
			return run(ctx, c, enc, reader, out, logger)
		})
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Context, enc *opendot.Encoder, r io.Reader, w io.Writer, logger *log.Logger) error {
	term := &opendot.Xterm{Writer: w}

	if fps := c.Int("mjpeg"); fps > 0 {
		logger.Printf("animating mjpeg stream at %d fps", fps)
		return opendot.NewMJPEGAnimator(enc, term).Animate(ctx, r, fps)
	}

	if c.Bool("play") {
		giff, err := gif.DecodeAll(r)
		if err != nil {
			return err
		}
		start := time.Now()
		anim, err := opendot.RenderGIF(giff, enc.Config())
		if err != nil {
			return err
		}
		logger.Printf("rendered %d frames in %v", len(anim.Frames), time.Since(start))
		err = enc.Play(ctx, anim, term)
		if err == context.Canceled {
			return nil
		}
		return err
	}

	img, err := opendot.Decode(r)
	if err != nil {
		return err
	}
	cfg := enc.Config()
	b := img.Bounds()
	cols, rows, err := opendot.GridSize(b.Dx(), b.Dy(), cfg.MaxColumns, cfg.VerticalScale)
	if err != nil {
		return err
	}
	logger.Printf("rendering %dx%d image as %d columns by %d rows", b.Dx(), b.Dy(), cols, rows)
	if cfg.Colored && cfg.Dither {
		logger.Printf("dithering is ignored for colored output")
	}
	if err := enc.Encode(img); err != nil {
		return err
	}
	if c.String("format") == "text" && c.String("out") == "" {
		_, err = io.WriteString(w, "\n")
		return err
	}
	return nil
}

// loadConfig starts from the YAML preset, if any, and applies the flags
// that were set on top of it.
func loadConfig(c *cli.Context, logger *log.Logger) (opendot.Config, error) {
	cfg := opendot.DefaultConfig()
	if path := c.String("config"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		if cfg, err = opendot.LoadConfig(f); err != nil {
			return cfg, err
		}
		logger.Printf("loaded preset %s", path)
	}

	if c.IsSet("columns") {
		cfg.MaxColumns = c.Int("columns")
	} else if c.String("config") == "" {
		if cols, _, err := opendot.TerminalSize(); err == nil && cols > 0 {
			cfg.MaxColumns = cols
		}
	}
	if c.IsSet("vertical-scale") {
		cfg.VerticalScale = c.Float64("vertical-scale")
	}
	if c.IsSet("contrast") {
		cfg.Contrast = c.Int("contrast")
	}
	if c.IsSet("brightness") {
		cfg.Brightness = c.Int("brightness")
	}
	if c.IsSet("charset") {
		cs, ok := opendot.LookupCharset(c.String("charset"))
		if !ok {
			return cfg, fmt.Errorf("unknown charset %q, expected one of %s", c.String("charset"), strings.Join(opendot.CharsetNames(), ", "))
		}
		cfg.Charset = cs
	}
	if custom := opendot.Charset(c.String("chars")); len(custom) > 1 {
		cfg.Charset = custom
	}
	if wide := cfg.Charset.WideRunes(); len(wide) > 0 {
		logger.Printf("charset contains double width characters %q; columns will not line up", string(wide))
	}
	if c.Bool("invert") {
		cfg.Invert = true
	}
	if c.Bool("color") {
		cfg.Colored = true
	}
	if c.Bool("dither") {
		cfg.Dither = true
	}
	if c.Bool("no-smooth") {
		cfg.Smoothing = false
	}
	if c.IsSet("resampler") {
		rs, ok := opendot.LookupResampler(c.String("resampler"))
		if !ok {
			return cfg, fmt.Errorf("unknown resampler %q", c.String("resampler"))
		}
		cfg.Resampler = rs
	}
	return cfg, cfg.Validate()
}

func newEncoder(c *cli.Context, w io.Writer, cfg opendot.Config) (*opendot.Encoder, error) {
	format, err := opendot.ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}
	opts := []opendot.EncoderOpt{
		opendot.WithFormat(format),
		opendot.WithRasterOptions(opendot.RasterOptions{
			FontSize:    c.Float64("font-size"),
			Transparent: c.Bool("transparent"),
		}),
	}
	if format == opendot.FormatANSI && c.String("out") != "" {
		// Files get full color; the profile of a terminal is detected.
		opts = append(opts, opendot.WithProfile(termenv.TrueColor))
	}
	return opendot.NewEncoder(w, cfg, opts...), nil
}

// withOutput calls fn with the file at path, or with stdout when path is
// empty. The file is closed afterwards and a close error is returned if fn
// succeeded.
func withOutput(path string, fn func(w io.Writer) error) (err error) {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

// openInput opens a file, then tries a url, then falls back to stdin.
func openInput(input string) (io.Reader, io.Closer, error) {
	if input == "" {
		return os.Stdin, ioutil.NopCloser(os.Stdin), nil
	}
	if file, err := os.Open(input); err == nil {
		return file, file, nil
	}
	resp, err := http.Get(input)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("fetching %s: %s", input, resp.Status)
	}
	return resp.Body, resp.Body, nil
}
