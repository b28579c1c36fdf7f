// package formatter provides functions to export shelf data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/shared"
)

// ExportToCSV converts a Shelf to CSV format with columns: ID, Title, Year, Players, Play Time, Categories, Play Count, Rating
func ExportToCSV(shelf *models.Shelf) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Players", "Play Time", "Categories", "Play Count", "Rating"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range shelf.Items {
		record := []string{
			item.Game.ID,
			item.Game.Title,
			optionalInt(item.Game.Year),
			shared.FormatPlayerRange(item.Game.MinPlayers, item.Game.MaxPlayers),
			shared.FormatPlayTime(item.Game.PlayTimeMin, item.Game.PlayTimeMax),
			strings.Join(item.Game.Categories, "; "),
			strconv.Itoa(item.Entry.PlayCount),
			optionalInt(item.Entry.Rating),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Shelf to Markdown format
func ExportToMarkdown(shelf *models.Shelf) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s's Shelf\n\n", shelf.User.Name))
	buf.WriteString(fmt.Sprintf("**Games**: %d\n\n", len(shelf.Items)))

	buf.WriteString("## Games\n\n")
	for i, item := range shelf.Items {
		yearPart := ""
		if item.Game.Year != nil {
			yearPart = fmt.Sprintf(" (%d)", *item.Game.Year)
		}
		players := shared.FormatPlayerRange(item.Game.MinPlayers, item.Game.MaxPlayers)
		buf.WriteString(fmt.Sprintf("%d. %s%s [%s players, %s]\n",
			i+1, item.Game.Title, yearPart, players,
			shared.FormatPlayTime(item.Game.PlayTimeMin, item.Game.PlayTimeMax)))

		if item.Entry.Review != nil && *item.Entry.Review != "" {
			buf.WriteString(fmt.Sprintf("   > %s\n", *item.Entry.Review))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Shelf to plain text format
func ExportToText(shelf *models.Shelf) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Shelf: %s <%s>\n", shelf.User.Name, shelf.User.Email))
	buf.WriteString(fmt.Sprintf("Games: %d\n\n", len(shelf.Items)))

	for i, item := range shelf.Items {
		buf.WriteString(fmt.Sprintf("%d. %s", i+1, item.Game.Title))
		if item.Entry.PlayCount > 0 {
			buf.WriteString(fmt.Sprintf(" (played %d times)", item.Entry.PlayCount))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ToOwnerJSON generates a JSON representation of the shelf owner (without items)
func ToOwnerJSON(user models.User) ([]byte, error) {
	return shared.MarshalJSON(user, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	ShelfFile    string
	MetadataFile string
}

// WriteCSVExport exports a shelf to CSV format with accompanying owner metadata JSON file.
//
// Defaults to the user ID as the base filename & creates {base}_shelf.csv and {base}_metadata.json
func WriteCSVExport(shelf *models.Shelf, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = shelf.User.ID
	}

	csvData, err := ExportToCSV(shelf)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	shelfFile := baseFilepath + "_shelf.csv"
	if err := os.WriteFile(shelfFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToOwnerJSON(shelf.User)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		ShelfFile:    shelfFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports a shelf to Markdown format in a dedicated directory.
//
// Directory name defaults to the user ID. Creates {dir}/README.md.
func WriteMarkdownExport(shelf *models.Shelf, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = shelf.User.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	mdData, err := ExportToMarkdown(shelf)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a shelf to plain text format.
//
// Defaults to {user.ID}_shelf.txt as the filename.
func WriteTextExport(shelf *models.Shelf, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_shelf.txt", shelf.User.ID)
	}

	textData, err := ExportToText(shelf)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
