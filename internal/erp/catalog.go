package erp

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ravenerp/journey-sync/internal/model"
)

//go:embed catalog.yaml
var catalogYAML []byte

var fallbackOnce = sync.OnceValue(func() []model.Category {
	var cats []model.Category
	if err := yaml.Unmarshal(catalogYAML, &cats); err != nil {
		panic(fmt.Sprintf("built-in category catalog is malformed: %v", err))
	}

	return cats
})

// FallbackCategories returns the built-in category catalog. Callers
// receive a fresh slice and may reorder it freely.
func FallbackCategories() []model.Category {
	cached := fallbackOnce()

	cats := make([]model.Category, len(cached))
	copy(cats, cached)

	return cats
}
