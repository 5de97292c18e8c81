package converter

import (
	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/entity"

	"github.com/samber/lo"
)

func InventoryToResponses(inventory []entity.BloodInventory) []dto.InventoryResponse {
	return lo.Map(inventory, func(row entity.BloodInventory, _ int) dto.InventoryResponse {
		return dto.InventoryResponse{
			BloodType: string(row.BloodType),
			Quantity:  row.Quantity,
			UpdatedAt: row.UpdatedAt,
		}
	})
}
