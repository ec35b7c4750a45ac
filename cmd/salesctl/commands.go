package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-data-api/internal/domain"
	"github.com/vfg2006/sales-data-api/pkg/utils"
)

const nullStatusLabel = "(nulo)"

func newRootCmd(factory serviceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "salesctl",
		Short:         "Operações de manutenção da base de vendas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newSchemaCmd(factory),
		newImportCmd(factory),
		newReportCmd(factory),
	)

	return cmd
}

func newSchemaCmd(factory serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Cria a tabela sales_data caso não exista",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Importer.EnsureSchema(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Tabela sales_data pronta")
			return nil
		},
	}
}

type importOptions struct {
	file   string
	asJSON bool
}

func newImportCmd(factory serviceFactory) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Importa um arquivo CSV de pedidos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			path := opts.file
			if path == "" {
				path = svc.Config.Import.FilePath
			}

			if err := svc.Importer.EnsureSchema(cmd.Context()); err != nil {
				return err
			}

			summary, err := svc.Importer.ImportFile(cmd.Context(), path)
			if err != nil {
				return err
			}

			return writeSummary(cmd.OutOrStdout(), summary, opts.asJSON)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Arquivo CSV (padrão: IMPORT_FILE_PATH)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Imprime o resumo em JSON")

	return cmd
}

func newReportCmd(factory serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Mostra a quantidade de itens por status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			counts, err := svc.Reporter.CountByStatus(cmd.Context())
			if err != nil {
				return err
			}

			return renderStatusTable(cmd.OutOrStdout(), counts)
		},
	}
}

func writeSummary(w io.Writer, summary *domain.ImportSummary, asJSON bool) error {
	if asJSON {
		out, err := utils.PrettyJSON(summary)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}

	_, err := fmt.Fprintf(w, "Importação %s concluída: %d lidos, %d inseridos, %d ignorados em %s\n",
		summary.RunID, summary.RecordsRead, summary.Inserted, summary.Skipped, summary.Duration)
	return err
}

func renderStatusTable(w io.Writer, counts []domain.StatusCount) error {
	table := tablewriter.NewWriter(w)
	table.Header("Status", "Quantidade")

	for _, count := range counts {
		status := nullStatusLabel
		if count.Status != nil {
			status = *count.Status
		}
		if err := table.Append([]string{status, strconv.FormatInt(count.Count, 10)}); err != nil {
			return err
		}
	}

	return table.Render()
}
