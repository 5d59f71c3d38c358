package checkoutControllers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueprint-wear/storefront-api/models"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func TestValidationIssuesListEveryFailingField(t *testing.T) {
	v := newValidator()

	input := checkoutInput{
		Email:        "not-an-email",
		Phone:        "123",
		CustomerName: "A",
	}
	err := v.Struct(input)
	require.Error(t, err)

	issues := validationIssues(err)
	fields := make(map[string]string, len(issues))
	for _, issue := range issues {
		fields[issue.Field] = issue.Rule
	}

	assert.Equal(t, "email", fields["Email"])
	assert.Equal(t, "min", fields["Phone"])
	assert.Equal(t, "min", fields["CustomerName"])
	assert.Equal(t, "required", fields["Items"])
	assert.Len(t, issues, 4)
}

func TestValidationAcceptsMinimalPayload(t *testing.T) {
	v := newValidator()

	input := checkoutInput{
		Email:        "ana@example.com",
		Phone:        "+37360000000",
		CustomerName: "Ana Popescu",
		Items:        []checkoutItemInput{{Slug: "oversized-hoodie-black", Qty: 2}},
	}
	assert.NoError(t, v.Struct(input))
}

func TestValidationRejectsZeroQty(t *testing.T) {
	v := newValidator()

	input := checkoutInput{
		Email:        "ana@example.com",
		Phone:        "+37360000000",
		CustomerName: "Ana Popescu",
		Items:        []checkoutItemInput{{Slug: "oversized-hoodie-black", Qty: 0}},
	}
	assert.Error(t, v.Struct(input))
}

func TestBuildOrderItemsRepricesFromCatalog(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Slug: "oversized-hoodie-black", Name: "Oversized Hoodie — Black", PriceCents: 12900, Currency: "MDL"},
	}
	// The submitted payload carries no trusted price at all.
	items := []checkoutItemInput{{Slug: "oversized-hoodie-black", Qty: 2, Size: "M"}}

	orderItems, missing := buildOrderItems(items, products)
	require.Empty(t, missing)
	require.Len(t, orderItems, 1)
	assert.Equal(t, "p1", orderItems[0].ProductID)
	assert.Equal(t, "Oversized Hoodie — Black", orderItems[0].Name)
	assert.Equal(t, int64(12900), orderItems[0].PriceCents)
	assert.Equal(t, 2, orderItems[0].Qty)

	assert.Equal(t, int64(25800), orderTotal(orderItems))
}

func TestBuildOrderItemsNamesAllMissingSlugs(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Slug: "oversized-hoodie-black", PriceCents: 12900},
	}
	items := []checkoutItemInput{
		{Slug: "oversized-hoodie-black", Qty: 1},
		{Slug: "gone-1", Qty: 1},
		{Slug: "gone-2", Qty: 3},
	}

	_, missing := buildOrderItems(items, products)
	assert.Equal(t, []string{"gone-1", "gone-2"}, missing)
}

func TestOrderTotalSumsAcrossLines(t *testing.T) {
	items := []models.OrderItem{
		{PriceCents: 12900, Qty: 2},
		{PriceCents: 8900, Qty: 1},
	}
	assert.Equal(t, int64(34700), orderTotal(items))
}
