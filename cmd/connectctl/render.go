package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/careerconnect/connect-client/pkg/backend"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"gopkg.in/yaml.v3"
)

// render prints v as YAML using the same field names as the web views
func render(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	// JSON is valid YAML; decoding it keeps the JSON field names
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func say(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// argID parses a positional id argument
func argID(args []string, i int, name string) (int, error) {
	id, err := strconv.Atoi(args[i])
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInputError(name, "must be a positive number")
	}
	return id, nil
}

// readAttachment loads an optional upload from disk
func readAttachment(path string) (*backend.Attachment, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &backend.Attachment{
		FileName:    filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}
