package helper

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
)

// GenerateUniqueSlug slugs title and appends -1, -2, ... until exists reports it free.
func GenerateUniqueSlug(ctx context.Context, title string, exists func(context.Context, string) (bool, error)) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "event"
	}
	result := base
	i := 1

	for {
		taken, err := exists(ctx, result)
		if err != nil {
			return "", err
		}
		if !taken {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result, nil
}
