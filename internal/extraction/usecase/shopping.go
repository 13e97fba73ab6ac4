package usecase

import (
	"strings"
	"unicode"
)

// ShoppingCategory is forced on tasks that look like purchases.
const ShoppingCategory = "shopping"

var shoppingWords = map[string]bool{
	"buy":         true,
	"purchase":    true,
	"shopping":    true,
	"shop":        true,
	"grocery":     true,
	"groceries":   true,
	"supermarket": true,
	"restock":     true,
}

var shoppingTerms = []string{"购物", "购买", "买", "超市", "采购", "菜市场", "囤货"}

// IsShopping reports whether title or notes mention a purchase.
func IsShopping(title, notes string) bool {
	text := strings.ToLower(title + " " + notes)

	for _, term := range shoppingTerms {
		if strings.Contains(text, term) {
			return true
		}
	}

	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) || r > unicode.MaxLatin1
	})
	for _, w := range words {
		if shoppingWords[w] {
			return true
		}
	}
	return false
}
