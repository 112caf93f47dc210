// Package importer loads words from spreadsheet or CSV files into a lesson.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/lernwort/backend/internal/models"
)

// Column order of an import row.
const (
	colWord = iota
	colMeaning
	colType
	colArticle
	colPlural
	colPronunciation
	colExampleSentence
	colExampleMeaning
)

// Header is the expected first row of a file imported with SkipHeader.
var Header = []string{"word", "meaning", "type", "article", "plural", "pronunciation", "example", "exampleMeaning"}

// Config controls how rows are read.
type Config struct {
	FilePath   string
	LessonID   string
	SheetName  string // first sheet when empty
	SkipHeader bool
}

// Result summarises an import run.
type Result struct {
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Reused    int      `json:"reused"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

// WordCreator stores a word and attaches it to a lesson; created is false
// when an existing word was reused.
type WordCreator interface {
	Create(ctx context.Context, req models.CreateWordRequest) (word *models.Word, created bool, err error)
}

// ReadRows returns every row of a .csv, .xlsx or .xlsm file.
func ReadRows(path, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx", ".xlsm":
		return readExcel(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, row)
	}
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// ParseRow turns one row into a create request for lessonID. Validation of
// the values is left to the creator.
func ParseRow(row []string, lessonID string) (models.CreateWordRequest, error) {
	if cell(row, colWord) == "" {
		return models.CreateWordRequest{}, fmt.Errorf("word is empty")
	}
	req := models.CreateWordRequest{
		LessonID:      lessonID,
		Word:          cell(row, colWord),
		Meaning:       cell(row, colMeaning),
		Type:          models.WordType(strings.ToLower(cell(row, colType))),
		Article:       strings.ToLower(cell(row, colArticle)),
		Plural:        cell(row, colPlural),
		Pronunciation: cell(row, colPronunciation),
	}
	if s := cell(row, colExampleSentence); s != "" {
		req.Examples = []models.Example{{Sentence: s, Meaning: cell(row, colExampleMeaning)}}
	}
	return req, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Import reads cfg.FilePath and creates or reuses a word for every row. Row
// failures are collected in the result; only unreadable files and context
// cancellation abort the run.
func Import(ctx context.Context, creator WordCreator, cfg Config, log logrus.FieldLogger) (*Result, error) {
	rows, err := ReadRows(cfg.FilePath, cfg.SheetName)
	if err != nil {
		return nil, err
	}
	if cfg.SkipHeader && len(rows) > 0 {
		rows = rows[1:]
	}
	start := 1
	if cfg.SkipHeader {
		start = 2
	}

	result := &Result{Errors: []string{}}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if blank(row) {
			continue
		}
		line := start + i
		result.Processed++

		req, err := ParseRow(row, cfg.LessonID)
		if err == nil {
			var created bool
			if _, created, err = creator.Create(ctx, req); err == nil {
				if created {
					result.Created++
				} else {
					result.Reused++
				}
				continue
			}
		}
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
		log.WithField("row", line).WithError(err).Warn("import row skipped")
	}

	log.WithFields(logrus.Fields{
		"file":      cfg.FilePath,
		"processed": result.Processed,
		"created":   result.Created,
		"reused":    result.Reused,
		"skipped":   result.Skipped,
	}).Info("import finished")
	return result, nil
}
