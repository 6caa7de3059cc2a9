package scarve

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/scarve/scarve/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// srcExtensions are the supported source file types.
var srcExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

// dstExtensions are the file types the encoder can write to.
var dstExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// Ops holds the source and destination of a resize operation together
// with the execution options.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int

	spinner *utils.Spinner
	srcFile *os.File
}

// result holds the relevant information about the resizing process and the generated image.
type result struct {
	path string
	err  error
}

// Execute executes the image resizing process. The source can be a
// regular file, a directory, an URL or a stdin pipe; directories are
// processed concurrently by a bounded pool of workers.
func (p *Processor) Execute(op *Ops) {
	var (
		err error
		fs  os.FileInfo
	)
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SCARVE", utils.StatusMessage),
		utils.DecorateText("⇢ carving image (be patient, it may take a while)...", utils.DefaultMessage),
	)
	op.spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		src, err := utils.DownloadImage(op.Src)
		if src != nil {
			defer os.Remove(src.Name())
		}

		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		fs, err = src.Stat()
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		img, err := os.Open(src.Name())
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Unable to open the temporary image file: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}

		op.srcFile = img
	} else {
		// Check if the source is a pipe name or a regular file.
		if op.Src == op.PipeName {
			fs, err = os.Stdin.Stat()
		} else {
			fs, err = os.Stat(op.Src)
		}
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		var wg sync.WaitGroup
		// Read destination file or directory.
		_, err := os.Stat(op.Dst)
		if err != nil {
			err = os.Mkdir(op.Dst, 0755)
			if err != nil {
				log.Fatalf(
					utils.DecorateText("Unable to get dir stats: %v\n", utils.ErrorMessage),
					utils.DecorateText(err.Error(), utils.DefaultMessage),
				)
			}
		}
		// The workers share one terminal, so the per-seam progress
		// readout is reserved for single image mode.
		p.OnProgress = nil

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = utils.Min(runtime.NumCPU(), maxWorkers)
		}

		// Process recursively the image files from the specified directory concurrently.
		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, srcExtensions)

		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(p, op.Dst, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		for res := range ch {
			if res.err != nil {
				err = res.err
			}
			op.printOpStatus(res.path, err)
		}

		if err = <-errc; err != nil {
			fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		ext := strings.ToLower(filepath.Ext(op.Dst))
		if !utils.Contains(dstExtensions, ext) && op.Dst != op.PipeName {
			log.Fatal(utils.DecorateText(fmt.Sprintf("%v file type not supported", ext), utils.ErrorMessage))
		}

		p.OnProgress = op.spinner.Progress
		err = op.process(p, op.Src, op.Dst)
		op.printOpStatus(op.Dst, err)
	}
	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
}

// consumer reads the path names from the paths channel and calls the carving processor against the source image.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(dest, filepath.Base(src))
		// Readable formats the encoder cannot write fall back to JPEG.
		if ext := strings.ToLower(filepath.Ext(dst)); !utils.Contains(dstExtensions, ext) {
			dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + ".jpg"
		}
		err := op.process(p, src, dst)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process calls the carving processor over the source image and returns the error in case exists.
func (op *Ops) process(p *Processor, in, out string) error {
	// Start the progress indicator.
	op.spinner.Start()

	successMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ SCARVE", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been resized successfully ✔", utils.SuccessMessage),
	)

	errorMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ SCARVE", utils.StatusMessage),
		utils.DecorateText("resizing image failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		op.spinner.StopMsg = errorMsg
		op.spinner.Stop()
		return err
	}

	// Capture CTRL-C signal and restore back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		op.spinner.RestoreCursor()
		if f, ok := dst.(*os.File); ok && out != op.PipeName {
			os.Remove(f.Name())
		}
		os.Exit(1)
	}()

	defer func() {
		if img, ok := src.(*os.File); ok {
			if err := img.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	defer func() {
		if img, ok := dst.(*os.File); ok {
			if err := img.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = op.carve(p, src, dst, out)
	if err != nil {
		// remove the generated image file in case of an error
		if f, ok := dst.(*os.File); ok && out != op.PipeName {
			os.Remove(f.Name())
		}

		op.spinner.StopMsg = errorMsg
		// Stop the progress indicator.
		op.spinner.Stop()

		return err
	}
	op.spinner.StopMsg = successMsg
	// Stop the progress indicator.
	op.spinner.Stop()

	return nil
}

// carve decodes the source image, saves the energy table render, runs
// the carver and encodes the result, then saves the replay of the
// removed seams. The auxiliary images are skipped when the output goes
// to a stdout pipe.
func (op *Ops) carve(p *Processor, src io.Reader, dst io.Writer, out string) error {
	img, err := imaging.Decode(src)
	if err != nil {
		return fmt.Errorf("unable to decode the source image: %w", err)
	}
	orig := imgToNRGBA(img)
	origW, origH := orig.Bounds().Dx(), orig.Bounds().Dy()

	withArtifacts := out != op.PipeName
	if withArtifacts {
		et := NewEnergyTable(orig)
		if err := imaging.Save(et.Grayscale(), artifactPath(out, "energy")); err != nil {
			return fmt.Errorf("unable to save the energy table render: %w", err)
		}
	}

	res, history, err := p.Carve(orig)
	if err != nil {
		return err
	}
	if err := encodeImg(dst, res); err != nil {
		return err
	}

	if withArtifacts {
		replay, err := history.Visualize(res, origW, origH)
		if err != nil {
			return err
		}
		if err := imaging.Save(replay, artifactPath(out, "seams")); err != nil {
			return fmt.Errorf("unable to save the seam replay: %w", err)
		}
	}
	return nil
}

// artifactPath derives the name of an auxiliary image from the output path.
func artifactPath(out, kind string) string {
	ext := filepath.Ext(out)
	base := strings.TrimSuffix(out, ext)
	if ext == "" {
		ext = ".jpg"
	}
	return base + "_" + kind + ext
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source path is a local image or URL.
	if utils.IsValidUrl(in) {
		src = op.srcFile
	} else {
		// Check if the source is a pipe name or a regular file.
		if in == op.PipeName {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return nil, nil, errors.New("`-` should be used with a pipe for stdin")
			}
			src = os.Stdin
		} else {
			src, err = os.Open(in)
			if err != nil {
				return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
			}
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the image resizing process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError resizing the image: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	} else {
		if fname != op.PipeName {
			fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n\n",
				utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
				utils.DefaultColor,
			)
		}
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			fx := strings.ToLower(filepath.Ext(f.Name()))
			if utils.Contains(srcExts, fx) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}
