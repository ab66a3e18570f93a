package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chronos-tachyon/deflate"
)

type flagsType struct {
	Output      string
	Level       int8
	MemoryLevel int8
	Fixed       bool
	Trace       bool
}

var flags flagsType

func main() {
	rootCmd := &cobra.Command{
		Use:   "deflate [flags] [input-file]",
		Short: "Compress a file as a raw DEFLATE stream",
		Long: "Reads bytes from a file (or stdin), entropy codes them, and writes a raw\n" +
			"RFC 1951 DEFLATE stream to a file (or stdout).  Bytes are fed to the coder\n" +
			"as literals; no LZ77 match finding is performed.",
		Args:         cobra.MaximumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&flags.Output, "output", "o", "-", "output file, or \"-\" for stdout")
	rootCmd.Flags().Int8VarP(&flags.Level, "level", "l", int8(deflate.DefaultCompression), "compression level, -1 to 9")
	rootCmd.Flags().Int8Var(&flags.MemoryLevel, "memory-level", int8(deflate.DefaultMemoryLevel), "memory level, 0 (default) to 9")
	rootCmd.Flags().BoolVar(&flags.Fixed, "fixed", false, "forbid dynamic Huffman blocks")
	rootCmd.Flags().BoolVar(&flags.Trace, "trace", false, "log each block as it is emitted")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) (retErr error) {
	var errs *multierror.Error
	clevel := deflate.CompressLevel(flags.Level)
	if !clevel.IsValid() {
		errs = multierror.Append(errs, fmt.Errorf("invalid --level %d: expected a value in [-1, 9]", flags.Level))
	}
	mlevel := deflate.MemoryLevel(flags.MemoryLevel)
	if !mlevel.IsValid() {
		errs = multierror.Append(errs, fmt.Errorf("invalid --memory-level %d: expected a value in [0, 9]", flags.MemoryLevel))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}

	input := io.Reader(os.Stdin)
	inputName := "-"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
		inputName = args[0]
	}

	output := io.Writer(os.Stdout)
	if flags.Output != "-" {
		f, err := os.Create(flags.Output)
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil && retErr == nil {
				retErr = err
			}
		}()
		output = f
	}

	opts := []deflate.Option{
		deflate.WithCompressLevel(clevel),
		deflate.WithMemoryLevel(mlevel),
	}
	if flags.Fixed {
		opts = append(opts, deflate.WithStrategy(deflate.FixedStrategy))
	}

	var logger *zap.Logger
	if flags.Trace {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		opts = append(opts, deflate.WithTracers(&zapTracer{logger: logger}))
	}

	fw := deflate.NewWriter(bufio.NewWriter(output), opts...)
	src := &byteSource{r: bufio.NewReader(input)}
	if err := fw.EncodeTokens(src); err != nil {
		return err
	}
	if err := fw.Close(); err != nil {
		return err
	}

	if logger != nil {
		inputBytes := fw.InputBytesTotal()
		outputBytes := fw.OutputBytesTotal()
		ratio := float64(0)
		if inputBytes != 0 {
			ratio = float64(outputBytes) / float64(inputBytes)
		}
		logger.Info("stream finished",
			zap.String("input", inputName),
			zap.Uint64("inputBytes", inputBytes),
			zap.Uint64("outputBytes", outputBytes),
			zap.Uint("numBlocks", fw.NumBlocks()),
			zap.Stringer("dataType", fw.DataType()),
			zap.Float64("ratio", ratio),
		)
	}
	return nil
}

// byteSource turns a byte stream into literal tokens.  Match finding is out
// of scope for this tool; the output is a conformant DEFLATE stream
// compressed by entropy coding alone.
type byteSource struct {
	r *bufio.Reader
}

func (src *byteSource) NextToken() (deflate.Token, error) {
	ch, err := src.r.ReadByte()
	if err != nil {
		return deflate.Token{}, err
	}
	return deflate.Token{Literal: ch}, nil
}

// zapTracer narrates Writer events to a zap logger.
type zapTracer struct {
	logger *zap.Logger
}

func (tr *zapTracer) OnEvent(event deflate.Event) {
	fields := make([]zap.Field, 0, 8)
	fields = append(fields,
		zap.Uint64("inputBytes", event.InputBytesTotal),
		zap.Uint64("outputBytes", event.OutputBytesTotal),
		zap.Uint("numBlocks", event.NumBlocks),
	)
	if event.Block != nil {
		fields = append(fields,
			zap.Stringer("blockType", event.Block.Type),
			zap.Bool("isFinal", event.Block.IsFinal),
		)
	}
	if event.Trees != nil {
		fields = append(fields,
			zap.Uint16("numLL", event.Trees.LiteralLengthCount),
			zap.Uint16("numD", event.Trees.DistanceCount),
			zap.Uint16("numX", event.Trees.CodeCount),
		)
	}
	tr.logger.Info(event.Type.String(), fields...)
}
