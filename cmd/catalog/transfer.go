package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
	"github.com/yourusername/product-catalog-client/internal/infrastructure/excel"
	"github.com/yourusername/product-catalog-client/internal/usecase"
)

var importCmd = &cobra.Command{
	Use:   "import [file.xlsx]",
	Short: "Create products from an .xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := newRepository(cfg, nil, logger)
		res, err := importFile(cmd.Context(), repo, args[0], logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d products (%d skipped)\n", res.Imported, res.Skipped)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file.xlsx]",
	Short: "Write all products to an .xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := newRepository(cfg, nil, logger)
		n, err := exportFile(cmd.Context(), repo, args[0], logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d products to %s\n", n, args[0])
		return nil
	},
}

// logView dashboard holatini chizmaydi, faqat bildirishnomalarni logga yozadi
type logView struct {
	logger *zap.Logger
}

func (logView) SetLoading(bool) {}
func (logView) RenderWidgets(usecase.WidgetsView) {}
func (logView) RenderTable(usecase.TableView) {}
func (logView) RenderPagination(usecase.PaginationView) {}
func (logView) RenderModal(usecase.ModalView) {}

func (v logView) Notify(n entity.Notification) {
	if n.Kind == entity.NotificationError {
		v.logger.Warn(n.Message)
		return
	}
	v.logger.Info(n.Message)
}

func headless(repo repository.ProductRepository, l *zap.Logger) *usecase.DashboardController {
	return usecase.NewDashboardController(repo, logView{logger: l}, usecase.ContextConfirm,
		usecase.WithLogger(l),
		usecase.WithExcel(excel.NewParser(l.Named("excel")), excel.NewWriter()),
	)
}

func importFile(ctx context.Context, repo repository.ProductRepository, path string, l *zap.Logger) (usecase.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return usecase.ImportResult{}, fmt.Errorf("read workbook: %w", err)
	}
	return headless(repo, l).ImportProducts(ctx, data)
}

func exportFile(ctx context.Context, repo repository.ProductRepository, path string, l *zap.Logger) (int, error) {
	dash := headless(repo, l)
	if err := dash.LoadProducts(ctx); err != nil {
		return 0, err
	}

	data, err := dash.ExportProducts(ctx)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(dash.State().Products), nil
}
