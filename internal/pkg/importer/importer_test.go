package importer

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		require.NoError(t, f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+1), &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseInternships(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Title", "Company Name", "Description", "Location", "Skills", "Major"},
		[]interface{}{"Backend Intern", "Acme", "Build APIs", "Cairo", "Go, SQL; Docker", "Computer Science"},
		[]interface{}{"", "", "", "", "", ""},
		[]interface{}{"", "Acme", "No title here"},
		[]interface{}{"Design Intern", "", "Make things pretty"},
	)

	rows, rowErrs, err := ParseInternships(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Backend Intern", rows[0].Title)
	assert.Equal(t, "Acme", rows[0].CompanyName)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, rows[0].Skills)
	assert.Equal(t, "Computer Science", rows[0].Major)
	assert.Empty(t, rows[0].Stipend)

	assert.Equal(t, "Design Intern", rows[1].Title)
	assert.Empty(t, rows[1].CompanyName)

	require.Len(t, rowErrs, 1)
	assert.Equal(t, "row 4: title is required", rowErrs[0].Error())
}

func TestParseInternships_HeaderCaseInsensitive(t *testing.T) {
	buf := workbook(t,
		[]interface{}{" TITLE ", "company name"},
		[]interface{}{"Data Intern", "Globex"},
	)

	rows, _, err := ParseInternships(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Globex", rows[0].CompanyName)
}

func TestParseInternships_MissingTitleColumn(t *testing.T) {
	buf := workbook(t, []interface{}{"Name", "Company"})

	_, _, err := ParseInternships(buf)
	assert.ErrorIs(t, err, ErrMissingTitleColumn)
}

func TestParseInternships_NotAWorkbook(t *testing.T) {
	_, _, err := ParseInternships(bytes.NewBufferString("plain text"))
	assert.Error(t, err)
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "Rust"}, SplitSkills(" Go ,, Rust ;"))
	assert.Empty(t, SplitSkills(""))
}
