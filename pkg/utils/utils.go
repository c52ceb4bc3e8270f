// Package utils 提供随机数/serialize/时间等通用工具
package utils

import (
	"encoding/json"
	"math"
	"math/rand"
	"time"
)

// RandInt 生成 [min, max] 区间内的随机整数
func RandInt(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

// RandFloat 生成 [min, max) 区间内的随机浮点数
func RandFloat(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// RandChoice 从切片中均匀随机选取一个元素
func RandChoice[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// RandTimeBetween 在 [start, end) 区间内均匀随机选取一个时间点
func RandTimeBetween(rng *rand.Rand, start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	span := end.Sub(start)
	return start.Add(time.Duration(rng.Int63n(int64(span))))
}

// Round2 四舍五入到两位小数
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// ToJSON 将对象转换为 JSON 字符串
func ToJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// FromJSON 从 JSON 字符串解析对象
func FromJSON(data string, v any) error {
	return json.Unmarshal([]byte(data), v)
}
