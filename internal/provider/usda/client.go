package usda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.nal.usda.gov"
	defaultTimeout = 12 * time.Second
)

// FoodMatch is one FoodData Central hit with nutrients on a per-100g basis.
type FoodMatch struct {
	FDCID        int64   `json:"fdc_id"`
	Description  string  `json:"description"`
	CaloriesKcal float64 `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	CarbsG       float64 `json:"carbs_g"`
	FatG         float64 `json:"fat_g"`
	FiberG       float64 `json:"fiber_g"`
	SugarG       float64 `json:"sugar_g"`
	SodiumMg     float64 `json:"sodium_mg"`
}

type Client struct {
	apiKey string
	rest   *resty.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rest := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{apiKey: apiKey, rest: rest}
}

// SearchFood queries the foods/search endpoint for a generic (non-branded)
// ingredient match. ok=false with a nil error means the database has no match;
// any error is a transport or protocol failure.
func (c *Client) SearchFood(ctx context.Context, name string) (FoodMatch, bool, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return FoodMatch{}, false, fmt.Errorf("missing USDA API key")
	}
	query := strings.TrimSpace(name)
	if query == "" {
		return FoodMatch{}, false, nil
	}

	var parsed searchResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetBody(map[string]any{
			"query":    query,
			"dataType": []string{"Foundation", "SR Legacy", "Survey (FNDDS)"},
			"pageSize": 5,
		}).
		SetResult(&parsed).
		Post("/fdc/v1/foods/search")
	if err != nil {
		return FoodMatch{}, false, fmt.Errorf("execute USDA search: %w", err)
	}
	if resp.IsError() {
		return FoodMatch{}, false, fmt.Errorf("USDA search failed with status %d", resp.StatusCode())
	}
	if len(parsed.Foods) == 0 {
		return FoodMatch{}, false, nil
	}

	food := parsed.Foods[0]
	out := FoodMatch{
		FDCID:       food.FDCID,
		Description: strings.TrimSpace(food.Description),
	}
	for _, n := range food.FoodNutrients {
		switch strings.ToLower(strings.TrimSpace(n.NutrientName)) {
		case "energy":
			// Some records carry both kcal and kJ under "Energy".
			if strings.EqualFold(strings.TrimSpace(n.UnitName), "kcal") || out.CaloriesKcal == 0 {
				out.CaloriesKcal = n.Value
			}
		case "protein":
			out.ProteinG = n.Value
		case "carbohydrate, by difference":
			out.CarbsG = n.Value
		case "total lipid (fat)":
			out.FatG = n.Value
		case "fiber, total dietary":
			out.FiberG = n.Value
		case "sugars, total including nlea", "sugars, total":
			out.SugarG = n.Value
		case "sodium, na":
			out.SodiumMg = n.Value
		}
	}
	return out, true, nil
}

type searchResponse struct {
	Foods []usdaFood `json:"foods"`
}

type usdaFood struct {
	FDCID         int64          `json:"fdcId"`
	Description   string         `json:"description"`
	FoodNutrients []usdaNutrient `json:"foodNutrients"`
}

type usdaNutrient struct {
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}
