package usecase

import "github.com/vidshop/backend/internal/domain"

// sampleProducts is the bundled demo catalog used when no upstream analysis
// is available or when an analysis response cannot be parsed.
var sampleProducts = []domain.Product{
	{
		Timeline:    []float64{13.0, 16.0},
		Brand:       "Jennie-O",
		ProductName: "93% lean-7% fat fresh-ground turkey",
		Location:    []float64{5.2, 18.5, 7.8, 9.3},
		Price:       "Not specified",
		Description: "The ground turkey is displayed on a countertop and its packaging label is shown, highlighting its nutritional information.",
	},
	{
		Timeline:    []float64{13.0, 16.0},
		Brand:       "Unknown",
		ProductName: "Whipped Low Fat Cottage Cheese Spreadable",
		Location:    []float64{7.8, 20.4, 5.2, 3.7},
		Price:       "Not specified",
		Description: "The cottage cheese is displayed on a countertop and later its nutrition facts label is focused on in a close-up shot.",
	},
	{
		Timeline:    []float64{13.0, 16.0},
		Brand:       "Unknown",
		ProductName: "White eggs",
		Location:    []float64{10.4, 22.2, 3.1, 3.7},
		Price:       "Not specified",
		Description: "The eggs are shown nestled within a cardboard carton and later used in the recipe.",
	},
	{
		Timeline:    []float64{13.0, 16.0},
		Brand:       "Unknown",
		ProductName: "Kale leaves",
		Location:    []float64{13.0, 24.1, 3.6, 4.6},
		Price:       "Not specified",
		Description: "The kale leaves are displayed on a countertop and later added to the skillet with the ground turkey mixture.",
	},
	{
		Timeline:    []float64{216.0, 224.0},
		Brand:       "Unknown",
		ProductName: "Flat piece of dough",
		Location:    []float64{15.6, 25.9, 5.2, 4.6},
		Price:       "Not specified",
		Description: "The dough is shown resting on parchment paper next to a rolling pin, indicating it is part of the burrito-making process.",
	},
}

// SampleProducts returns a copy of the bundled demo catalog.
func SampleProducts() []domain.Product {
	out := make([]domain.Product, len(sampleProducts))
	copy(out, sampleProducts)
	return out
}
