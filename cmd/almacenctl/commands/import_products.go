package commands

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
)

const (
	charsetUTF8   = "utf8"
	charsetLatin1 = "latin1"
)

var (
	importFile    string
	importCharset string
)

var importProductsCmd = &cobra.Command{
	Use:   "import-products",
	Short: "Alta masiva de productos desde CSV",
	Long: `Crea productos a partir de un CSV con columnas:

  code,name,category,unit,min_stock,max_stock[,unit_price]

La cabecera es opcional. Los códigos ya existentes se omiten y se reportan.
Los archivos exportados desde Excel en Windows suelen venir en Latin-1: usar --charset latin1.

Ejemplo:
  almacenctl import-products --file productos.csv --charset latin1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFile == "" {
			return errors.New("--file es obligatorio")
		}
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("abrir %s: %w", importFile, err)
		}
		defer f.Close()

		rows, err := parseProductsCSV(f, importCharset)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		uc := usecase.NewProductUseCase(postgres.NewProductRepository(e.pool))
		report := importProducts(cmd.Context(), uc, rows)
		report.print(cmd.OutOrStdout())
		if len(report.Failed) > 0 {
			return fmt.Errorf("%d filas con error", len(report.Failed))
		}
		return nil
	},
}

func init() {
	importProductsCmd.Flags().StringVar(&importFile, "file", "", "Ruta del CSV")
	importProductsCmd.Flags().StringVar(&importCharset, "charset", charsetUTF8, "Codificación del archivo: utf8 | latin1")
	rootCmd.AddCommand(importProductsCmd)
}

// csvRow fila ya convertida; Err no nil si la fila es inválida.
type csvRow struct {
	Line    int
	Product dto.CreateProductRequest
	Err     error
}

// parseProductsCSV decodifica y valida el CSV. Los errores de fila no abortan la lectura.
func parseProductsCSV(r io.Reader, charset string) ([]csvRow, error) {
	switch strings.ToLower(charset) {
	case "", charsetUTF8, "utf-8":
	case charsetLatin1, "iso-8859-1":
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	default:
		return nil, fmt.Errorf("charset no soportado %q (utf8|latin1)", charset)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []csvRow
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv: línea %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimPrefix(strings.TrimSpace(record[0]), "\ufeff"), "code") {
			continue
		}
		p, err := recordToProduct(record)
		rows = append(rows, csvRow{Line: line, Product: p, Err: err})
	}
	return rows, nil
}

func recordToProduct(record []string) (dto.CreateProductRequest, error) {
	var p dto.CreateProductRequest
	if len(record) < 6 || len(record) > 7 {
		return p, fmt.Errorf("se esperaban 6 o 7 columnas, hay %d", len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	p.Code, p.Name, p.Category, p.Unit = strings.TrimPrefix(record[0], "\ufeff"), record[1], record[2], record[3]

	minStock, err := strconv.ParseInt(record[4], 10, 64)
	if err != nil {
		return p, fmt.Errorf("min_stock inválido %q", record[4])
	}
	maxStock, err := strconv.ParseInt(record[5], 10, 64)
	if err != nil {
		return p, fmt.Errorf("max_stock inválido %q", record[5])
	}
	p.MinStock, p.MaxStock = &minStock, &maxStock

	if len(record) == 7 && record[6] != "" {
		// Acepta coma decimal (1234,50) además de punto.
		price, err := decimal.NewFromString(strings.Replace(record[6], ",", ".", 1))
		if err != nil {
			return p, fmt.Errorf("unit_price inválido %q", record[6])
		}
		p.UnitPrice = &price
	}
	return p, nil
}

// productCreator subconjunto de ProductUseCase usado por la importación.
type productCreator interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
}

type importFailure struct {
	Line int
	Code string
	Err  error
}

type importReport struct {
	Created int
	Skipped []string // códigos ya existentes
	Failed  []importFailure
}

func importProducts(ctx context.Context, uc productCreator, rows []csvRow) importReport {
	var rep importReport
	for _, row := range rows {
		if row.Err != nil {
			rep.Failed = append(rep.Failed, importFailure{Line: row.Line, Code: row.Product.Code, Err: row.Err})
			continue
		}
		_, err := uc.Create(ctx, row.Product)
		switch {
		case err == nil:
			rep.Created++
		case errors.Is(err, domain.ErrConflict):
			rep.Skipped = append(rep.Skipped, row.Product.Code)
		default:
			rep.Failed = append(rep.Failed, importFailure{Line: row.Line, Code: row.Product.Code, Err: err})
		}
	}
	return rep
}

func (r importReport) print(w io.Writer) {
	fmt.Fprintf(w, "✓ %d productos creados\n", r.Created)
	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "• %d omitidos (código existente): %s\n", len(r.Skipped), strings.Join(r.Skipped, ", "))
	}
	for _, f := range r.Failed {
		fmt.Fprintf(w, "✗ línea %d (%s): %v\n", f.Line, f.Code, f.Err)
	}
}
