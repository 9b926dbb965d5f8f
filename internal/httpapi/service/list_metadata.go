package service

import (
	"math"

	"bookstop/internal/httpapi/models"
)

// computeListMetadata derives the stored aggregate from the list's
// current members. The average covers only books that carry a rating,
// rounded to one decimal, and is 0 when none do. Genres are the
// deduplicated union of the members' subjects in first-seen order.
func computeListMetadata(books []models.Book) models.ListMetadata {
	metadata := models.ListMetadata{
		TotalBooks: len(books),
		Genres:     []string{},
	}

	var sum float64
	var rated int
	seen := make(map[string]bool)

	for _, book := range books {
		if book.RatingsAverage != nil {
			sum += *book.RatingsAverage
			rated++
		}
		for _, genre := range book.Subjects {
			if genre == "" || seen[genre] {
				continue
			}
			seen[genre] = true
			metadata.Genres = append(metadata.Genres, genre)
		}
	}

	if rated > 0 {
		metadata.AverageRating = math.Round(sum/float64(rated)*10) / 10
	}

	return metadata
}
