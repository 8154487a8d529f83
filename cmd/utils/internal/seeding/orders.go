package seeding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/snacktrackhq/snacktrack/internal/order"
)

type demoSnack struct {
	name  string
	price int64
}

var demoSnacks = []demoSnack{
	{name: "Tea / Coffee", price: 15},
	{name: "Pakoda", price: 25},
	{name: "Samosa", price: 15},
	{name: "Kachori", price: 20},
	{name: "Pav Bhaji", price: 60},
	{name: "Vada Pav", price: 25},
	{name: "Sandwich", price: 40},
}

// SeedOrders writes a week of plausible stall traffic: a handful of
// orders per day spread over opening hours, most of them paid. The
// daily counters are advanced so live ordering continues the sequence.
func SeedOrders(ctx context.Context, db *mongo.Database) error {
	rng := rand.New(rand.NewSource(42))
	orders := db.Collection("orders")
	counters := db.Collection("counters")

	now := time.Now()
	var docs []interface{}

	for daysAgo := 6; daysAgo >= 0; daysAgo-- {
		day := now.AddDate(0, 0, -daysAgo)
		perDay := 5 + rng.Intn(8)

		for n := 1; n <= perDay; n++ {
			hour := 8 + rng.Intn(14)
			at := time.Date(day.Year(), day.Month(), day.Day(), hour, rng.Intn(60), 0, 0, day.Location())
			docs = append(docs, buildDemoOrder(rng, n, at))
		}

		key := day.Format("2006-01-02")
		_, err := counters.UpdateOne(ctx,
			bson.M{"_id": key},
			bson.M{"$max": bson.M{"seq": perDay}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed counter %s: %w", key, err)
		}
	}

	if _, err := orders.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert demo orders: %w", err)
	}

	return nil
}

func buildDemoOrder(rng *rand.Rand, dailyNumber int, at time.Time) *order.Order {
	o := order.NewOrder()
	o.DailyNumber = dailyNumber
	o.CreatedBy = order.DemoCreatorID
	o.CreatedAt = at
	o.UpdatedAt = at

	// Most stall orders settle on the spot.
	o.PaymentDone = rng.Intn(10) < 8

	lines := 1 + rng.Intn(3)
	for i := 0; i < lines; i++ {
		snack := demoSnacks[rng.Intn(len(demoSnacks))]
		qty := 1 + rng.Intn(3)
		o.Items = append(o.Items, order.LineItem{
			Name:  snack.name,
			Qty:   qty,
			Price: snack.price,
			Total: int64(qty) * snack.price,
		})
	}
	for _, item := range o.Items {
		o.TotalAmount += item.Total
	}

	return o
}

// ClearOrders removes everything SeedOrders created.
func ClearOrders(ctx context.Context, db *mongo.Database) (int64, error) {
	result, err := db.Collection("orders").DeleteMany(ctx, bson.M{"created_by": order.DemoCreatorID})
	if err != nil {
		return 0, fmt.Errorf("delete demo orders: %w", err)
	}
	return result.DeletedCount, nil
}
