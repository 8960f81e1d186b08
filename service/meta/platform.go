/*
 * @module service/meta/platform
 * @description 健身平台与分析能力的元数据定义，供前端展示和参数校验使用
 * @architecture 元数据层 - 静态定义
 * @documentReference ai_docs/platform_integration_req.md
 * @stateFlow 服务启动时静态加载 -> 元数据查询接口返回
 * @rules 平台ID与 service/platform 注册表中的名称保持一致
 * @dependencies 无
 * @refs api/controllers/meta_controller.go, service/platform/interface.go
 */

package meta

// PlatformDefinition 健身平台定义
type PlatformDefinition struct {
	Name                      string `json:"name"`
	ID                        string `json:"id"`
	APIURL                    string `json:"api_url"`
	SupportsDirectIntegration bool   `json:"supports_direct_integration"`
	Note                      string `json:"note,omitempty"`
}

// SupportedPlatforms 支持的健身平台列表
var SupportedPlatforms = []PlatformDefinition{
	{
		Name:                      "Fitbit",
		ID:                        "fitbit",
		APIURL:                    "https://dev.fitbit.com",
		SupportsDirectIntegration: true,
	},
	{
		Name:                      "Garmin",
		ID:                        "garmin",
		APIURL:                    "https://developer.garmin.com",
		SupportsDirectIntegration: true,
	},
	{
		Name:                      "Apple Health",
		ID:                        "apple",
		APIURL:                    "https://developer.apple.com/healthkit",
		SupportsDirectIntegration: false,
		Note:                      "需要带 HealthKit 权限的 iOS 应用上传导出数据",
	},
	{
		Name:                      "设备实时流",
		ID:                        "stream",
		APIURL:                    "",
		SupportsDirectIntegration: true,
		Note:                      "通过 MQTT 主题推送的实时步数采样",
	},
	{
		Name:                      "手动上传",
		ID:                        "manual",
		APIURL:                    "",
		SupportsDirectIntegration: false,
	},
}

// AnalyzerFeatures 分析器能力列表
var AnalyzerFeatures = []string{
	"每日步数聚合",
	"均值与中位数统计",
	"峰值活动时段检测",
	"工作日/周末模式对比",
	"分时段活动分析",
	"缺失数据插补",
	"数据质量指标",
}

// AnalyzerAlgorithms 分析器采用的算法说明
var AnalyzerAlgorithms = []string{
	"规范化网格聚合",
	"同时段跨天均值插补",
	"时间序列统计分析",
	"确定性峰值检测",
}
