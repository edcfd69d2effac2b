// Command gen writes typed gorm query helpers for the persistence models.
package main

import (
	"storefront/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.RefreshTokenModel{},
		model.UserTokenModel{},
		model.UserDeviceModel{},
		model.ProductModel{},
		model.CartItemModel{},
		model.OrderModel{},
		model.OrderItemModel{},
		model.PaymentIntentModel{},
		model.ReviewModel{},
		model.SaleBannerModel{},
		model.GalleryImageModel{},
		model.HeroImageModel{},
	}

	g := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	g.ApplyBasic(models...)

	g.Execute()
}
