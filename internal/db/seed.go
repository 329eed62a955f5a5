package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/user"
	"github.com/geocoder89/fittrack/internal/security"
)

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
)

// ReferenceFoods are per 100 g.
var ReferenceFoods = []nutrition.Food{
	{Name: "Chicken Breast", Calories: 165, Protein: 31, Carbs: 0, Fats: 3.6},
	{Name: "Brown Rice", Calories: 216, Protein: 5, Carbs: 45, Fats: 1.8},
	{Name: "Broccoli", Calories: 55, Protein: 3.7, Carbs: 11, Fats: 0.6},
	{Name: "Salmon", Calories: 208, Protein: 22, Carbs: 0, Fats: 12},
	{Name: "Avocado", Calories: 160, Protein: 2, Carbs: 9, Fats: 15},
	{Name: "Quinoa", Calories: 222, Protein: 8, Carbs: 39, Fats: 3.6},
	{Name: "Greek Yogurt", Calories: 100, Protein: 17, Carbs: 6, Fats: 0.4},
	{Name: "Spinach", Calories: 23, Protein: 2.9, Carbs: 3.6, Fats: 0.4},
	{Name: "Sweet Potato", Calories: 86, Protein: 1.6, Carbs: 20, Fats: 0.1},
	{Name: "Almonds", Calories: 579, Protein: 21, Carbs: 22, Fats: 50},
	{Name: "Banana", Calories: 89, Protein: 1.1, Carbs: 23, Fats: 0.3},
	{Name: "Oats", Calories: 389, Protein: 17, Carbs: 66, Fats: 7},
	{Name: "Eggs", Calories: 155, Protein: 13, Carbs: 1.1, Fats: 11},
	{Name: "Tuna", Calories: 132, Protein: 28, Carbs: 0, Fats: 1.3},
	{Name: "Cottage Cheese", Calories: 98, Protein: 11, Carbs: 3.4, Fats: 4.3},
}

type FoodSeeder interface {
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, foods []nutrition.Food) error
}

type UserSeeder interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, u user.User) error
}

type SeedResult struct {
	FoodsInserted int
	DemoUserAdded bool
}

// Seed loads the reference foods and the demo account. Each step checks for
// existing data on its own, so running it again is a no-op.
func Seed(ctx context.Context, foods FoodSeeder, users UserSeeder, logger *slog.Logger) (SeedResult, error) {
	var res SeedResult

	n, err := foods.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		if err := foods.InsertMany(ctx, ReferenceFoods); err != nil {
			return res, err
		}
		res.FoodsInserted = len(ReferenceFoods)
		logger.InfoContext(ctx, "seeded food database", "count", res.FoodsInserted)
	}

	added, err := ensureDemoUser(ctx, users)
	if err != nil {
		return res, err
	}
	res.DemoUserAdded = added
	if added {
		logger.InfoContext(ctx, "seeded demo user", "email", DemoEmail)
	}

	return res, nil
}

func ensureDemoUser(ctx context.Context, users UserSeeder) (bool, error) {
	// check if the user exists
	_, err := users.GetByEmail(ctx, DemoEmail)

	if err == nil {
		return false, nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return false, err
	}

	hash, err := security.HashPassword(DemoPassword)

	if err != nil {
		return false, err
	}

	age := 25
	gender := "other"
	height := 175.0
	weight := 70.0

	u, err := user.New(user.RegisterRequest{
		Email:        DemoEmail,
		Name:         "Demo User",
		Age:          &age,
		Gender:       &gender,
		Height:       &height,
		Weight:       &weight,
		FitnessGoals: []string{"General Fitness", "Weight Loss"},
	}, hash, time.Now())
	if err != nil {
		return false, err
	}

	err = users.Create(ctx, u)
	// another instance seeded first
	if errors.Is(err, user.ErrEmailTaken) {
		return false, nil
	}
	return err == nil, err
}
