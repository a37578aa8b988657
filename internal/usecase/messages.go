package usecase

import (
	"errors"
	"strings"

	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

// Foydalanuvchiga ko'rinadigan matnlar
const (
	MsgLoadFailed      = "Failed to load products. Please check if the API is running."
	MsgInvalidForm     = "Please fill in all fields with valid values"
	MsgCreated         = "Product created successfully!"
	MsgUpdated         = "Product updated successfully!"
	MsgDeleted         = "Product deleted successfully!"
	MsgDeleteFailed    = "Failed to delete product"
	MsgOperationFailed = "Operation failed"
	MsgImportFailed    = "Failed to import products"
	MsgEmptyList       = "No products found. Create your first product!"
	DeletePrompt       = "Are you sure you want to delete this product?"

	TitleCreate       = "Create New Product"
	SubmitCreate      = "Create Product"
	TitleEdit         = "Edit Product"
	SubmitUpdate      = "Update Product"
	ModalTitleAdd     = "Add Product"
	ModalTitleEdit    = "Edit Product"
	WidgetMostName    = "Most Expensive"
	WidgetLeastName   = "Least Expensive"
	IndicatorAsc      = "↑"
	IndicatorDesc     = "↓"
	zeroPriceWidget   = "$0.00"
	zeroCountWidget   = "0"
	defaultPerPage    = 10
	importSummaryText = "Imported %d products (%d skipped)"
)

// LocalValidationError forma API ga yuborilmasdan rad etildi
type LocalValidationError struct {
	Fields []string
}

func (e *LocalValidationError) Error() string {
	return MsgInvalidForm + " (" + strings.Join(e.Fields, ", ") + ")"
}

// submitMessage submit xatosini foydalanuvchi matniga aylantirish
func submitMessage(err error) string {
	var ve *repository.ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}
	var local *LocalValidationError
	if errors.As(err, &local) {
		return MsgInvalidForm
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgOperationFailed
}
