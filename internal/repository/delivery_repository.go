package repository

import (
	"context"

	"app/internal/domain/model"
)

// 注文1件につきDeliveryTypeと一致する1レコードだけを作る。
// 排他はOrderComposerが保証し、ここは書き込みだけを約束する。
type DeliveryRepository interface {
	CreateAddress(ctx context.Context, d model.AddressDelivery) (int64, error)
	CreateStation(ctx context.Context, d model.StationDelivery) (int64, error)
	CreatePickup(ctx context.Context, d model.PickupDelivery) (int64, error)
}
