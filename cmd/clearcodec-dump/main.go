// Command clearcodec-dump decodes a single ClearCodec-encoded frame from a
// file and writes the reconstructed rectangle out as a binary PPM image,
// for offline inspection of captured RDP graphics traffic.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rcarmo/clearcodec/internal/clearcodec"
	"github.com/rcarmo/clearcodec/internal/config"
	"github.com/rcarmo/clearcodec/internal/logging"
	"github.com/rcarmo/clearcodec/internal/pixelformat"
)

var (
	appName    = "ClearCodec frame dumper"
	appVersion = "dev" // injected at build time via -ldflags
)

type parsedArgs struct {
	inputPath  string
	outputPath string
	logPath    string
	logLevel   string
	width      int
	height     int
}

func main() {
	args, action := parseFlags()
	if action != "" {
		return
	}
	if err := run(args); err != nil {
		log.Fatalln(err)
	}
}

func parseFlags() (parsedArgs, string) {
	return parseFlagsWithArgs(os.Args[1:])
}

func parseFlagsWithArgs(args []string) (parsedArgs, string) {
	fs := flag.NewFlagSet("clearcodec-dump", flag.ContinueOnError)
	inputFlag := fs.String("in", "", "path to a raw ClearCodec frame")
	outputFlag := fs.String("out", "out.ppm", "path to write the decoded PPM image")
	logPathFlag := fs.String("log-file", "", "rotate logs to this file instead of stderr")
	logLevelFlag := fs.String("log-level", "", "log level (debug, info, warn, error)")
	widthFlag := fs.Int("width", 0, "frame logical width in pixels")
	heightFlag := fs.Int("height", 0, "frame logical height in pixels")
	helpFlag := fs.Bool("help", false, "show help")
	versionFlag := fs.Bool("version", false, "show version")

	_ = fs.Parse(args)

	if *helpFlag {
		showHelp()
		return parsedArgs{}, "help"
	}
	if *versionFlag {
		showVersion()
		return parsedArgs{}, "version"
	}

	return parsedArgs{
		inputPath:  strings.TrimSpace(*inputFlag),
		outputPath: strings.TrimSpace(*outputFlag),
		logPath:    strings.TrimSpace(*logPathFlag),
		logLevel:   strings.TrimSpace(*logLevelFlag),
		width:      *widthFlag,
		height:     *heightFlag,
	}, ""
}

func run(args parsedArgs) error {
	if args.inputPath == "" {
		return fmt.Errorf("missing -in")
	}

	cfg, err := config.LoadWithOverrides(config.LoadOptions{
		LogLevel: args.logLevel,
		LogFile:  args.logPath,
		Width:    args.width,
		Height:   args.height,
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(cfg.Logging.File, cfg.Logging.Level)

	width, height := cfg.Frame.DefaultWidth, cfg.Frame.DefaultHeight
	if width > cfg.Frame.MaxWidth || height > cfg.Frame.MaxHeight {
		return fmt.Errorf("frame %dx%d exceeds configured max %dx%d", width, height, cfg.Frame.MaxWidth, cfg.Frame.MaxHeight)
	}

	src, err := os.ReadFile(args.inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	ctx := clearcodec.NewContext(false)
	defer ctx.Free()

	dstFmt := pixelformat.BGRX32
	bpp := pixelformat.BytesPerPixel(dstFmt)
	dstStep := width * bpp
	dst := make([]byte, dstStep*height)

	err = ctx.DecompressFrame(src, width, height, dst, dstFmt, dstStep, 0, 0, width, height, nil)
	if err != nil {
		logging.Error("decode failed: %v (code %d)", err, clearcodec.Code(err))
		return err
	}

	if err := writePPM(args.outputPath, dst, dstStep, dstFmt, width, height); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logging.Info("decoded %dx%d frame to %s", width, height, args.outputPath)
	return nil
}

// writePPM writes dst (in dstFmt) as a binary PPM (P6), converting each
// pixel to 24-bit RGB on the fly.
func writePPM(path string, dst []byte, dstStep int, dstFmt pixelformat.Format, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height)

	bpp := pixelformat.BytesPerPixel(dstFmt)
	for y := 0; y < height; y++ {
		row := dst[y*dstStep:]
		for x := 0; x < width; x++ {
			color, err := pixelformat.ReadColor(row[x*bpp:], dstFmt, nil)
			if err != nil {
				return err
			}
			r := byte(color >> 16)
			g := byte(color >> 8)
			b := byte(color)
			if _, err := w.Write([]byte{r, g, b}); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

func setupLogging(logPath, level string) {
	if logPath != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	log.SetFlags(log.LstdFlags | log.LUTC)
	logging.SetLevelFromString(level)
}

func showHelp() {
	fmt.Println(appName)
	fmt.Println("USAGE: clearcodec-dump -in frame.bin [options]")
	fmt.Println("OPTIONS:")
	fmt.Println("  -in         Path to a raw ClearCodec-encoded frame")
	fmt.Println("  -out        Path to write the decoded PPM image (default out.ppm)")
	fmt.Println("  -width      Frame logical width in pixels (default 1024, env CLEARCODEC_DEFAULT_WIDTH)")
	fmt.Println("  -height     Frame logical height in pixels (default 768, env CLEARCODEC_DEFAULT_HEIGHT)")
	fmt.Println("  -log-file   Rotate logs to this file instead of stderr")
	fmt.Println("  -log-level  Log level (debug, info, warn, error)")
	fmt.Println("  -version    Show version information")
	fmt.Println("  -help       Show this help message")
	fmt.Println("ENVIRONMENT VARIABLES: CLEARCODEC_DEFAULT_WIDTH, CLEARCODEC_DEFAULT_HEIGHT, CLEARCODEC_MAX_WIDTH, CLEARCODEC_MAX_HEIGHT, LOG_LEVEL, LOG_FILE")
}

func showVersion() {
	fmt.Printf("%s %s\n", appName, appVersion)
}
