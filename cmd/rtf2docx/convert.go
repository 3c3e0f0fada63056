package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	convert "github.com/rtfdocx/convert"
	"github.com/spf13/cobra"
)

var (
	outputFile string
	fromBase64 bool

	convertCmd = &cobra.Command{
		Use:   "convert <input.rtf>",
		Short: "Convert an RTF file (or stdin) to a Word document",
		Long: `Convert converts an RTF document to Word (.docx) format.

By default the input is read from a file path argument and treated as raw
RTF bytes. With --base64, the argument is instead read as a path to a file
(or "-" for stdin) holding Base64-encoded RTF text.`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}
)

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .docx file path (default: input filename with .docx extension)")
	convertCmd.Flags().BoolVar(&fromBase64, "base64", false, "Treat the input as Base64-encoded RTF text")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	data, err := readInput(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var doc *convert.Rtf
	if fromBase64 {
		doc, err = convert.FromBase64(string(data))
	} else {
		doc, err = convert.FromBytes(data)
	}
	if err != nil {
		return fmt.Errorf("parsing RTF: %w", err)
	}

	output := outputFile
	if output == "" {
		base := inputPath
		if base == "-" {
			base = "stdin"
		}
		base = strings.TrimSuffix(base, filepath.Ext(base))
		output = base + ".docx"
	}

	docxBytes, err := doc.IntoDocx()
	if err != nil {
		return fmt.Errorf("building docx: %w", err)
	}

	if err := os.WriteFile(output, docxBytes, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Printf("Wrote %s\n", output)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
