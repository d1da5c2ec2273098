package table

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/jhillyerd/enmime"

	"tabkit/internal/logger"
)

// ReadEmail collects the tables carried by a raw MIME message: HTML body
// tables, then CSV and XLSX attachments in order. Attachments that fail to
// parse are logged and skipped.
func ReadEmail(raw []byte, delimiter rune) ([]*Table, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	out := []*Table{}
	if env.HTML != "" {
		tables, err := ReadHTML(strings.NewReader(env.HTML))
		if err == nil {
			out = append(out, tables...)
		}
	}

	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment"
		}
		lower := strings.ToLower(filename)

		switch {
		case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"):
			d := delimiter
			if strings.HasSuffix(lower, ".tsv") {
				d = '\t'
			}
			t, err := ReadCSV(bytes.NewReader(att.Content), baseName(filename), d)
			if err != nil {
				slog.Warn("skip attachment", slog.String("attachment", filename), logger.Error(err))
				continue
			}
			out = append(out, t)
		case strings.HasSuffix(lower, ".xlsx"):
			tables, err := ReadXLSX(bytes.NewReader(att.Content), "")
			if err != nil {
				slog.Warn("skip attachment", slog.String("attachment", filename), logger.Error(err))
				continue
			}
			for _, t := range tables {
				t.Name = baseName(filename) + "_" + t.Name
			}
			out = append(out, tables...)
		}
	}
	return out, nil
}
