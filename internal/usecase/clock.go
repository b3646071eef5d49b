package usecase

import "time"

// 現在時刻の約束。キャンセル期限の判定をテストで動かせるようにする。
type Clock interface {
	Now() time.Time
}
