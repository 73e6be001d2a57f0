package usecase

import "marketplace/internal/domain/model"

// ベンダーグループ。グループごとに1つの注文になる。
type VendorGroup struct {
	VendorID int64
	Lines    []model.CartItem
}

// SplitByVendor はカートの明細をベンダーごとに分ける。
// 副作用なし。グループは初出順、グループ内は入力の順のまま。
// 同じ入力からは常に同じ結果になる。
func SplitByVendor(lines []model.CartItem) []VendorGroup {
	groups := make([]VendorGroup, 0)
	index := make(map[int64]int)

	for _, line := range lines {
		vendorID := line.Product.VendorID
		i, ok := index[vendorID]
		if !ok {
			i = len(groups)
			index[vendorID] = i
			groups = append(groups, VendorGroup{VendorID: vendorID})
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}

	return groups
}
