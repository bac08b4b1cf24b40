package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/models"
)

// Recommend prompts for growing conditions, fetches crop suggestions and
// prints them as a numbered list. The result is kept so the show command
// can inspect individual suggestions afterwards.
func (a *App) Recommend(ctx context.Context) error {
	defaultLocation := ""
	if user := a.session.CurrentUser(); user != nil && user.Location != nil {
		defaultLocation = user.Location.City
	}

	prompt := "Enter your city"
	if defaultLocation != "" {
		prompt += " [" + defaultLocation + "]"
	}
	location, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return err
	}
	if location == "" {
		location = defaultLocation
	}
	if location == "" {
		printlnFn("A location is required for recommendations")
		return nil
	}

	sunlight, err := getSimpleText(a.reader, "Sunlight (full/partial)", os.Stdout)
	if err != nil {
		return err
	}
	waterNeeds, err := getSimpleText(a.reader, "Water needs (low/medium/high)", os.Stdout)
	if err != nil {
		return err
	}
	areaText, err := getSimpleText(a.reader, "Available area (sq ft)", os.Stdout)
	if err != nil {
		return err
	}
	area, err := strconv.Atoi(areaText)
	if err != nil {
		printlnFn("Area must be a whole number")
		return err
	}

	crops, err := a.recom.Recommend(ctx, models.RecommendationQuery{
		Location:          location,
		Sunlight:          sunlight,
		WaterNeeds:        waterNeeds,
		AvgArea:           area,
		IncludeCompanions: true,
	})
	if err != nil {
		printlnFn("Could not fetch recommendations:", err.Error())
		return err
	}

	if len(crops) == 0 {
		printlnFn("No crops matched your conditions")
		return nil
	}

	a.recommended = crops
	a.inspected = nil
	a.companions = nil

	printlnFn("Recommended crops:")
	for i, crop := range crops {
		line := fmt.Sprintf("  %d. %s", i+1, crop.Name)
		if crop.ScientificName != "" {
			line += " (" + crop.ScientificName + ")"
		}
		printlnFn(line)
	}
	printlnFn("Use 'show <number>' for details and companion crops")
	return nil
}

// Show inspects one recommendation, by list number or by name, and resolves
// its companion crops.
func (a *App) Show(ctx context.Context, arg string) error {
	if len(a.recommended) == 0 {
		printlnFn("Run 'recommend' first")
		return nil
	}

	crop := a.findRecommended(arg)
	if crop == nil {
		printlnFn("No such recommendation:", arg)
		return nil
	}

	companions, err := a.recom.CompanionDetails(ctx, *crop)
	if err != nil {
		printlnFn("Could not resolve companion crops:", err.Error())
		return err
	}

	a.inspected = crop
	a.companions = companions

	printlnFn(crop.Name)
	if crop.Description != "" {
		printlnFn("  " + crop.Description)
	}
	if info := crop.RecommendedInfo; info != nil {
		printlnFn("  Sunlight: " + info.Sunlight + ", water needs: " + info.WaterNeeds + ", soil: " + info.SoilType)
	}
	if len(companions) == 0 {
		printlnFn("  No companion crops")
		return nil
	}
	printlnFn("  Companion crops:")
	for _, companion := range companions {
		line := "    - " + companion.Name
		if companion.Description != "" {
			line += ": " + companion.Description
		}
		printlnFn(line)
	}
	return nil
}

func (a *App) findRecommended(arg string) *models.Crop {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(a.recommended) {
			return nil
		}
		return &a.recommended[n-1]
	}
	for i := range a.recommended {
		if strings.EqualFold(a.recommended[i].Name, arg) {
			return &a.recommended[i]
		}
	}
	return nil
}
