package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// order_number生成のリトライ上限。
// 一意性の最終保証はDBのユニーク制約。
const maxOrderNumberAttempts = 3

// newOrderNumber は「ORD-YYYYMMDD-XXXXXXXX」形式の注文番号を作る。
// 日付プレフィックス＋ランダム8桁。衝突したら作り直す前提。
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}
