package controllers

import (
	"net/http"

	"activity-service/service/meta"

	"github.com/go-chi/render"
)

type MetaController struct {
}

func NewMetaController() *MetaController {
	return &MetaController{}
}

// @Summary 获取支持的健身平台列表
// @Description 获取所有支持的健身平台元数据
// @Tags 元数据
// @Produce json
// @Success 200 {object} APIResponse{data=[]meta.PlatformDefinition}
// @Router /meta/platforms [get]
func (c *MetaController) GetPlatforms(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("获取平台元数据成功", meta.SupportedPlatforms))
}

// @Summary 获取分析器能力元数据
// @Description 获取分析器支持的能力与算法列表
// @Tags 元数据
// @Produce json
// @Success 200 {object} APIResponse{data=map[string]interface{}}
// @Router /meta/analyzer/features [get]
func (c *MetaController) GetAnalyzerFeatures(w http.ResponseWriter, r *http.Request) {
	features := map[string]interface{}{
		"features":   meta.AnalyzerFeatures,
		"algorithms": meta.AnalyzerAlgorithms,
	}
	render.JSON(w, r, SuccessResponse("获取分析器能力元数据成功", features))
}
