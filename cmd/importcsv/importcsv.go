// Package importcsv imports a statement file from the command line
package importcsv

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"jortega/finanzas/cmd/root"
	"jortega/finanzas/internal/container"
	"jortega/finanzas/internal/dateutils"
	"jortega/finanzas/internal/importer"
)

var (
	inputFile string
	userID    string
	accountID string
	delimiter string
	dateOrder string
	noHeader  bool

	colDate   string
	colDesc   string
	colAmount string
	colNotes  string
	colType   string
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV bank statement from a file",
	Long: `Import a CSV bank statement directly, without going through the HTTP
API. Each row is classified, provisioned and stored exactly as an
uploaded statement would be.`,
	RunE: importFunc,
}

// Init registers the import command flags
func Init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Statement file to import")
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "Owner of the imported transactions")
	Cmd.Flags().StringVarP(&accountID, "account", "a", "", "Target account id")
	Cmd.Flags().StringVar(&delimiter, "delimiter", "", "Field delimiter (defaults to configuration)")
	Cmd.Flags().StringVar(&dateOrder, "date-order", "", "Date order, dmy or ymd (defaults to configuration)")
	Cmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat the file as positional, without a header row")
	Cmd.Flags().StringVar(&colDate, "col-date", "", "Date column header or index")
	Cmd.Flags().StringVar(&colDesc, "col-desc", "", "Description column header or index")
	Cmd.Flags().StringVar(&colAmount, "col-amount", "", "Amount column header or index")
	Cmd.Flags().StringVar(&colNotes, "col-notes", "", "Notes column header or index")
	Cmd.Flags().StringVar(&colType, "col-type", "", "Type marker column header or index")
}

func importFunc(cmd *cobra.Command, args []string) error {
	if inputFile == "" {
		return fmt.Errorf("--file is required")
	}
	if userID == "" {
		return fmt.Errorf("--user is required")
	}

	content, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputFile, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	c, err := container.NewContainer(ctx, root.Cfg)
	if err != nil {
		return err
	}
	defer c.Close(context.Background())

	opts := importer.Options{
		UserID:    userID,
		AccountID: accountID,
		HasHeader: !noHeader,
		Columns: importer.ColumnSpec{
			Date:        colDate,
			Description: colDesc,
			Amount:      colAmount,
			Notes:       colNotes,
			Type:        colType,
		},
	}

	d := delimiter
	if d == "" {
		d = root.Cfg.Import.Delimiter
	}
	opts.Delimiter = rune(d[0])

	order := dateOrder
	if order == "" {
		order = root.Cfg.Import.DateOrder
	}
	opts.DateOrder = dateutils.DateOrder(order)

	result, err := c.GetImporter().Import(ctx, string(content), opts)
	if err != nil {
		return err
	}

	root.Log.Infof("Imported %d transactions (%d duplicates skipped, %d rows skipped)",
		result.Inserted, result.DuplicatesSkipped, result.Skipped)
	root.Log.Infof("Created %d categories and %d payees",
		result.CategoriesCreated, result.PayeesCreated)
	return nil
}
