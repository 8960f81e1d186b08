/*
 * @module service/analyzer/normalizer
 * @description 间隔规范化器，将异构平台的原始采样转换为统一的每天288桶规范化网格
 * @architecture 分层架构 - 分析核心层，纯函数
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 原始采样 -> 标签解析 -> 桶内累加 -> 补齐缺失桶 -> 规范化网格
 * @rules 网格覆盖请求范围内的每一天；缺失观测用 nil 表示；负步数和无法解析的标签立即报错
 * @dependencies github.com/spf13/cast, time
 * @refs errors.go, imputer.go, service/models/activity.go
 */

package analyzer

import (
	"strconv"
	"strings"
	"time"

	"activity-service/service/models"

	"github.com/spf13/cast"
)

// Normalize 将原始采样序列规范化为 [startDate, endDate] 范围（含端点）上的网格
// 范围内每一天固定288条记录，输入中不存在的 (日期, 间隔) 组合补为缺失记录；
// 同一桶的多个有效采样累加（分钟级数据折算进所属5分钟桶）；
// 范围之外的采样直接忽略
func Normalize(samples []models.RawSample, startDate, endDate string) (*models.ActivityGrid, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, NewInvalidInputError("起始日期 %q 无法解析", startDate)
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, NewInvalidInputError("结束日期 %q 无法解析", endDate)
	}
	if start.After(end) {
		return nil, NewInsufficientDataError("日期范围 %s ~ %s 不包含任何天", startDate, endDate)
	}

	days := int(end.Sub(start).Hours()/24) + 1

	// 按 (天序号, 间隔) 累加有效采样
	observed := make(map[int]float64)
	for i, sample := range samples {
		date, err := parseDate(sample.Date)
		if err != nil {
			return nil, NewInvalidInputError("第 %d 条采样的日期 %q 无法解析", i, sample.Date)
		}

		intervalID, err := parseIntervalLabel(sample.Interval)
		if err != nil {
			return nil, NewInvalidInputError("第 %d 条采样的间隔标签 %v 无法解析", i, sample.Interval)
		}

		steps, err := parseSteps(sample.Steps)
		if err != nil {
			return nil, NewInvalidInputError("第 %d 条采样的步数 %v 无效", i, sample.Steps)
		}

		if date.Before(start) || date.After(end) {
			continue
		}
		if steps == nil {
			continue // 显式缺失标记与桶缺席等价
		}

		dayIndex := int(date.Sub(start).Hours() / 24)
		observed[dayIndex*models.IntervalsPerDay+intervalID] += *steps
	}

	records := make([]models.IntervalRecord, 0, days*models.IntervalsPerDay)
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d)
		for id := 0; id < models.IntervalsPerDay; id++ {
			record := models.IntervalRecord{Date: date, IntervalID: id}
			if value, ok := observed[d*models.IntervalsPerDay+id]; ok {
				v := value
				record.Steps = &v
			}
			records = append(records, record)
		}
	}

	return &models.ActivityGrid{StartDate: start, EndDate: end, Records: records}, nil
}

// parseDate 解析 YYYY-MM-DD 日期，归一化到 UTC 零点
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseIntervalLabel 解析间隔标签
// 支持两种形式：[0,287] 的数字下标，以及 "HH:MM"/"HH:MM:SS" 时刻标签
// 时刻标签落入其所属的5分钟桶（例如 08:03 -> 桶 96）
func parseIntervalLabel(value interface{}) (int, error) {
	if s, ok := value.(string); ok && strings.Contains(s, ":") {
		parts := strings.Split(strings.TrimSpace(s), ":")
		// 时刻分量必须按十进制解析，"08"/"09" 带前导零
		hour, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, err
		}
		minute, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, err
		}
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return 0, NewInvalidInputError("时刻 %q 超出范围", s)
		}
		return hour*12 + minute/5, nil
	}

	id, err := cast.ToIntE(value)
	if err != nil {
		return 0, err
	}
	if id < 0 || id >= models.IntervalsPerDay {
		return 0, NewInvalidInputError("间隔下标 %d 超出 [0,%d]", id, models.IntervalsPerDay-1)
	}
	return id, nil
}

// parseSteps 解析步数值，nil 表示缺失
func parseSteps(value interface{}) (*float64, error) {
	if value == nil {
		return nil, nil
	}

	if s, ok := value.(string); ok {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" || strings.EqualFold(trimmed, "NA") || strings.EqualFold(trimmed, "null") {
			return nil, nil
		}
	}

	steps, err := cast.ToFloat64E(value)
	if err != nil {
		return nil, err
	}
	if steps < 0 {
		return nil, NewInvalidInputError("步数 %v 为负", value)
	}
	return &steps, nil
}
