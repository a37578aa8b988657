package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

func newListController(repo *fakeRepository, confirm ConfirmFunc) (*ListController, *fakeListView) {
	view := &fakeListView{}
	return NewListController(repo, view, confirm, WithClock(fixedClock)), view
}

func TestListLoadRendersCards(t *testing.T) {
	repo := newFakeRepository(sampleProducts()...)
	c, view := newListController(repo, alwaysConfirm)

	require.NoError(t, c.LoadProducts(context.Background()))

	require.Len(t, view.cards.Cards, 3)
	assert.Equal(t, CardView{ID: 1, Name: "Lamp", Description: "Brass", Price: "$10.00"}, view.cards.Cards[0])
	assert.Empty(t, view.cards.EmptyMessage)
	assert.Equal(t, []bool{true, false}, view.loading)
	assert.False(t, c.State().Loading)
}

func TestListLoadEmptyShowsPlaceholder(t *testing.T) {
	c, view := newListController(newFakeRepository(), alwaysConfirm)

	require.NoError(t, c.LoadProducts(context.Background()))

	assert.Empty(t, view.cards.Cards)
	assert.Equal(t, "No products found. Create your first product!", view.cards.EmptyMessage)
}

func TestListLoadFailureKeepsPreviousList(t *testing.T) {
	repo := newFakeRepository(sampleProducts()...)
	c, view := newListController(repo, alwaysConfirm)
	require.NoError(t, c.LoadProducts(context.Background()))

	repo.listErr = &repository.TransportError{Op: "list", Message: "Failed to fetch products"}
	err := c.LoadProducts(context.Background())

	require.Error(t, err)
	assert.Len(t, c.State().Products, 3)
	assert.Equal(t, 1, view.cardRenders)
	assert.Equal(t, []bool{true, false, true, false}, view.loading)
	assert.Equal(t, entity.Notification{
		Message:   "Failed to load products. Please check if the API is running.",
		Kind:      entity.NotificationError,
		CreatedAt: fixedNow,
	}, view.LastNotification())
}

func TestListSubmitInvalidDoesNotCallAPI(t *testing.T) {
	repo := newFakeRepository()
	c, view := newListController(repo, alwaysConfirm)

	err := c.SubmitForm(context.Background(), FormInput{Name: "Lamp", Description: "Brass", Price: "-5"})

	var local *LocalValidationError
	require.ErrorAs(t, err, &local)
	assert.Empty(t, repo.Calls())
	assert.Equal(t, "Please fill in all fields with valid values", view.LastNotification().Message)
	assert.Equal(t, "-5", view.form.Price, "typed values stay in the form")
}

func TestListSubmitCreate(t *testing.T) {
	repo := newFakeRepository()
	c, view := newListController(repo, alwaysConfirm)

	require.NoError(t, c.SubmitForm(context.Background(), FormInput{Name: "Lamp", Description: "Brass", Price: "12.5"}))

	assert.Equal(t, []string{"create", "list"}, repo.Calls())
	assert.Equal(t, entity.NotificationSuccess, view.Notifications()[0].Kind)
	assert.Equal(t, "Product created successfully!", view.Notifications()[0].Message)
	assert.Equal(t, FormView{Title: "Create New Product", SubmitLabel: "Create Product"}, view.form)
	assert.Len(t, view.cards.Cards, 1)
}

func TestListEditThenSubmitUpdates(t *testing.T) {
	repo := newFakeRepository(sampleProducts()...)
	c, view := newListController(repo, alwaysConfirm)
	require.NoError(t, c.LoadProducts(context.Background()))

	c.EditProduct(3)

	assert.Equal(t, FormView{
		Title: "Edit Product", SubmitLabel: "Update Product",
		Editing: true, EditingID: 3,
		Name: "Desk", Description: "oak", Price: "20",
	}, view.form)
	assert.Equal(t, 1, view.scrolled)

	require.NoError(t, c.SubmitForm(context.Background(), FormInput{Name: "Desk", Description: "Oak", Price: "25"}))

	assert.Equal(t, []string{"list", "update", "list"}, repo.Calls())
	assert.Equal(t, "Product updated successfully!", view.Notifications()[0].Message)
	assert.False(t, c.State().Form.Editing())
	assert.Equal(t, "Create Product", view.form.SubmitLabel)
}

func TestListEditUnknownIsNoop(t *testing.T) {
	c, view := newListController(newFakeRepository(sampleProducts()...), alwaysConfirm)
	require.NoError(t, c.LoadProducts(context.Background()))

	c.EditProduct(99)

	assert.False(t, c.State().Form.Editing())
	assert.Zero(t, view.scrolled)
	assert.Equal(t, FormView{}, view.form)
}

func TestListSubmitServerValidationShowsMessage(t *testing.T) {
	repo := newFakeRepository()
	repo.createErr = &repository.ValidationError{Message: "Invalid input data", Details: []string{"price: too low"}}
	c, view := newListController(repo, alwaysConfirm)

	err := c.SubmitForm(context.Background(), FormInput{Name: "a", Description: "b", Price: "1"})

	require.Error(t, err)
	assert.Equal(t, "Invalid input data", view.LastNotification().Message)
	assert.Equal(t, []string{"create"}, repo.Calls())
}

func TestListSubmitTransportErrorMessage(t *testing.T) {
	repo := newFakeRepository()
	repo.createErr = &repository.TransportError{Op: "create", Message: "Failed to create product", Err: errors.New("dial tcp")}
	c, view := newListController(repo, alwaysConfirm)

	_ = c.SubmitForm(context.Background(), FormInput{Name: "a", Description: "b", Price: "1"})

	assert.Equal(t, "Failed to create product", view.LastNotification().Message)
}

func TestListDeleteRequiresConfirmation(t *testing.T) {
	repo := newFakeRepository(sampleProducts()...)
	var prompts []string
	c, _ := newListController(repo, func(_ context.Context, prompt string) bool {
		prompts = append(prompts, prompt)
		return false
	})

	require.NoError(t, c.DeleteProduct(context.Background(), 2))

	assert.Empty(t, repo.Calls())
	assert.Equal(t, []string{"Are you sure you want to delete this product?"}, prompts)
}

func TestListDeleteConfirmed(t *testing.T) {
	repo := newFakeRepository(sampleProducts()...)
	c, view := newListController(repo, alwaysConfirm)

	require.NoError(t, c.DeleteProduct(context.Background(), 2))

	assert.Equal(t, []string{"delete", "list"}, repo.Calls())
	assert.Equal(t, "Product deleted successfully!", view.Notifications()[0].Message)
	assert.Len(t, view.cards.Cards, 2)
}

func TestListDeleteFailure(t *testing.T) {
	repo := newFakeRepository(sampleProducts()...)
	repo.deleteErr = &repository.TransportError{Op: "delete", Status: 500}
	c, view := newListController(repo, alwaysConfirm)

	require.Error(t, c.DeleteProduct(context.Background(), 2))

	assert.Equal(t, []string{"delete"}, repo.Calls())
	assert.Equal(t, entity.Notification{Message: "Failed to delete product", Kind: entity.NotificationError, CreatedAt: fixedNow}, view.LastNotification())
}

func TestListContextConfirm(t *testing.T) {
	repo := newFakeRepository(sampleProducts()...)
	c := NewListController(repo, &fakeListView{}, nil)

	require.NoError(t, c.DeleteProduct(context.Background(), 1))
	assert.Empty(t, repo.Calls())

	require.NoError(t, c.DeleteProduct(WithConfirmation(context.Background(), true), 1))
	assert.Equal(t, []string{"delete", "list"}, repo.Calls())
}

func TestListResetForm(t *testing.T) {
	c, view := newListController(newFakeRepository(sampleProducts()...), alwaysConfirm)
	require.NoError(t, c.LoadProducts(context.Background()))
	c.EditProduct(1)

	c.ResetForm()

	assert.False(t, c.State().Form.Editing())
	assert.Equal(t, FormView{Title: "Create New Product", SubmitLabel: "Create Product"}, view.form)
}
