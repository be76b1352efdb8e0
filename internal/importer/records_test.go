package importer

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_WithHeader(t *testing.T) {
	content := "Date;Description;Amount\n15/01/2023;MERCADONA;-25,50\n16/01/2023;NOMINA;1200,00\n"

	file, err := ParseFile(content, ';', true)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Description", "Amount"}, file.Headers)
	require.Len(t, file.Records, 2)
	assert.Equal(t, "MERCADONA", file.Records[0].Value("Description"))
	assert.Equal(t, "-25,50", file.Records[0].Value("Amount"))
	assert.Equal(t, "16/01/2023", file.Records[1].Value("Date"))
}

func TestParseFile_DefaultDelimiter(t *testing.T) {
	content := "Date;Amount\n15/01/2023;10,00\n"

	file, err := ParseFile(content, 0, true)
	require.NoError(t, err)
	require.Len(t, file.Records, 1)
	assert.Equal(t, "10,00", file.Records[0].Value("Amount"))
}

func TestParseFile_CommaDelimiter(t *testing.T) {
	content := "Date,Name / Description,Amount (EUR)\n20230115,ALBERT HEIJN 1662,-45.30\n"

	file, err := ParseFile(content, ',', true)
	require.NoError(t, err)
	require.Len(t, file.Records, 1)
	assert.Equal(t, "ALBERT HEIJN 1662", file.Records[0].Value("Name / Description"))
}

func TestParseFile_SkipsEmptyRows(t *testing.T) {
	content := "Date;Amount\n15/01/2023;10,00\n;\n\n16/01/2023;20,00\n"

	file, err := ParseFile(content, ';', true)
	require.NoError(t, err)
	assert.Len(t, file.Records, 2)
}

func TestParseFile_Positional(t *testing.T) {
	content := "15/01/2023;MERCADONA;-25,50\n16/01/2023;NOMINA;1200,00\n"

	file, err := ParseFile(content, ';', false)
	require.NoError(t, err)

	assert.Empty(t, file.Headers)
	require.Len(t, file.Records, 2)
	assert.Equal(t, "15/01/2023", file.Records[0].Value("0"))
	assert.Equal(t, "MERCADONA", file.Records[0].Value("1"))
	assert.Equal(t, "-25,50", file.Records[0].Value("2"))
}

func TestRecord_Value(t *testing.T) {
	header := Record{fields: map[string]string{"Amount": " 10,00 ", "Date": "15/01/2023"}}
	positional := Record{cells: []string{"a", " b "}}

	tests := []struct {
		name     string
		record   Record
		column   string
		expected string
	}{
		{name: "exact header match trims", record: header, column: "Amount", expected: "10,00"},
		{name: "case insensitive header match", record: header, column: "amount", expected: "10,00"},
		{name: "unknown header", record: header, column: "Saldo", expected: ""},
		{name: "empty identifier", record: header, column: "", expected: ""},
		{name: "positional index trims", record: positional, column: "1", expected: "b"},
		{name: "index out of range", record: positional, column: "5", expected: ""},
		{name: "negative index", record: positional, column: "-1", expected: ""},
		{name: "non-numeric index on positional record", record: positional, column: "Amount", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.Value(tt.column))
		})
	}
}

func TestParseFile_ConcurrentDelimiters(t *testing.T) {
	commaContent := "Date,Description,Amount\n15/01/2023,MERCADONA,-25.50\n"
	semiContent := "Date;Description;Amount\n16/01/2023;NOMINA;1200,00\n"

	var wg sync.WaitGroup
	errs := make(chan error, 200)

	check := func(content string, delimiter rune, wantDesc string) {
		defer wg.Done()
		file, err := ParseFile(content, delimiter, true)
		if err != nil {
			errs <- err
			return
		}
		if len(file.Records) != 1 {
			errs <- fmt.Errorf("expected 1 record, got %d", len(file.Records))
			return
		}
		if got := file.Records[0].Value("Description"); got != wantDesc {
			errs <- fmt.Errorf("expected description %q, got %q", wantDesc, got)
		}
	}

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go check(commaContent, ',', "MERCADONA")
		go check(semiContent, ';', "NOMINA")
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func TestParseFile_QuotedFields(t *testing.T) {
	content := "Date;Description;Amount\n15/01/2023;\"PAYEE; WITH SEMICOLON\";-10,00\n"

	file, err := ParseFile(content, ';', true)
	require.NoError(t, err)
	require.Len(t, file.Records, 1)
	assert.Equal(t, "PAYEE; WITH SEMICOLON", file.Records[0].Value("Description"))
}
