package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/orderscan/internal/pipeline"
	"github.com/dgallion1/orderscan/internal/render"
)

func checkFormat(format, out string) error {
	switch format {
	case "md", "json":
		return nil
	case "docx":
		if out == "" {
			return fmt.Errorf("--format docx requires --out")
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (docx, md, json)", format)
	}
}

func writeResult(w io.Writer, res *pipeline.Result, format string) error {
	switch format {
	case "docx":
		return render.WriteDocx(w, res.Lines)
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		md, err := render.Markdown(res.Lines)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, md)
		return err
	}
}
