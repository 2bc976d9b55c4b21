package importer

import (
	"bytes"
	"strings"
	"testing"

	"danishdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		expected    Format
		expectedErr bool
	}{
		{name: "xlsx", file: "words.xlsx", expected: FormatXLSX},
		{name: "upper case csv", file: "WORDS.CSV", expected: FormatCSV},
		{name: "unsupported", file: "words.txt", expectedErr: true},
		{name: "no extension", file: "words", expectedErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromName(tt.file)

			if tt.expectedErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRead_CSV(t *testing.T) {
	data := "danish,meaning,category\n" +
		"hej,hello,Social\n" +
		"\n" +
		"  tak , thanks \n" +
		"kun dansk,,\n"

	inputs, err := Read(strings.NewReader(data), FormatCSV, DefaultConfig())

	require.NoError(t, err)
	assert.Equal(t, []domain.PhraseInput{
		{DanishText: "hej", MeaningText: "hello", Category: "Social"},
		{DanishText: "tak", MeaningText: "thanks"},
		{DanishText: "kun dansk"},
	}, inputs)
}

func TestRead_XLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Danish", "Meaning", "Category"},
		{"god morgen", "good morning", "Daily Life"},
		{nil, nil, nil},
		{"toget", "the train"},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	inputs, err := Read(bytes.NewReader(buf.Bytes()), FormatXLSX, DefaultConfig())

	require.NoError(t, err)
	assert.Equal(t, []domain.PhraseInput{
		{DanishText: "god morgen", MeaningText: "good morning", Category: "Daily Life"},
		{DanishText: "toget", MeaningText: "the train"},
	}, inputs)
}

func TestRead_XLSXMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.SheetName = "Nope"

	_, err = Read(bytes.NewReader(buf.Bytes()), FormatXLSX, cfg)

	assert.Error(t, err)
}

func TestRead_InvalidWorkbook(t *testing.T) {
	_, err := Read(strings.NewReader("not a zip"), FormatXLSX, DefaultConfig())

	assert.Error(t, err)
}

func TestRead_UnsupportedFormat(t *testing.T) {
	_, err := Read(strings.NewReader(""), Format("ods"), DefaultConfig())

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
