package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

const unsplashSearchURL = "https://api.unsplash.com/search/photos"

// ImageService looks up a representative food photo for a meal name. Image
// lookup is cosmetic: every failure degrades to an empty URL.
type ImageService struct {
	accessKey string
	client    *http.Client
}

// NewImageService creates an ImageService. An empty access key disables
// lookups entirely.
func NewImageService(accessKey string) *ImageService {
	return &ImageService{
		accessKey: accessKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchFoodImage returns an image URL for the given search term, or "" when
// no image could be found.
func (s *ImageService) FetchFoodImage(ctx context.Context, searchTerm string) string {
	if s.accessKey == "" {
		return ""
	}

	query := url.Values{}
	query.Set("query", searchTerm+" food")
	query.Set("per_page", "1")
	query.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, unsplashSearchURL+"?"+query.Encode(), nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", fmt.Sprintf("Client-ID %s", s.accessKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("image search failed with status %d", resp.StatusCode)
		return ""
	}

	var result struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ""
	}

	if len(result.Results) == 0 {
		return ""
	}
	return result.Results[0].URLs.Regular
}
