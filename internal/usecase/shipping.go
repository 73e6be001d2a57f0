package usecase

import "marketplace/internal/domain/model"

// テーブルに無い県の送料
const DefaultShippingFee int64 = 50

// カート画面のプレビュー用（配送先確定前の概算）
const cartPreviewShippingFee int64 = 30

// 県ごとの固定送料
var shippingFees = map[model.Governorate]int64{
	model.GovernorateCairo:      30,
	model.GovernorateGiza:       30,
	model.GovernorateAlexandria: 40,
	model.GovernorateDakahlia:   45,
	model.GovernorateGharbia:    45,
	model.GovernorateSharkia:    45,
	model.GovernorateRedSea:     70,
	model.GovernorateSouthSinai: 80,
	model.GovernorateAswan:      75,
	model.GovernorateLuxor:      70,
}

// ShippingFee は配送先の県から送料を返す。I/Oなし。
// 注文（＝ベンダーグループ）ごとに1回かかる。
func ShippingFee(gov model.Governorate) int64 {
	if fee, ok := shippingFees[gov]; ok {
		return fee
	}
	return DefaultShippingFee
}
