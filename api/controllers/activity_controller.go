/*
 * @module api/controllers/activity_controller
 * @description 活动分析控制器，提供步数分析、报告查询和 HealthKit 导出上传接口
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 请求校验 -> 调用编排服务 -> 统一响应格式返回
 * @rules 参数错误返回400，数据不足返回422，资源不存在返回404，其余错误返回500
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/render, github.com/spf13/cast
 * @refs service/activity, service/platform
 */

package controllers

import (
	"net/http"

	"activity-service/service/activity"
	"activity-service/service/analyzer"
	"activity-service/service/models"
	"activity-service/service/platform"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/spf13/cast"
)

// ActivityController 活动分析控制器
type ActivityController struct {
	service *activity.ActivityService
	apple   *platform.AppleHealthClient
}

// NewActivityController 创建活动分析控制器实例
func NewActivityController(activityService *activity.ActivityService, apple *platform.AppleHealthClient) *ActivityController {
	return &ActivityController{
		service: activityService,
		apple:   apple,
	}
}

// Analyze 执行活动分析
// @Summary 执行步数活动分析
// @Description 从指定平台拉取步数采样（或使用请求体内的手动采样），生成分析报告
// @Tags 活动分析
// @Accept json
// @Produce json
// @Param request body models.AnalyzeRequest true "分析请求"
// @Success 200 {object} APIResponse{data=models.SummaryReport}
// @Failure 400 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /activity/analyze [post]
func (c *ActivityController) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("请求体解析失败: "+err.Error()))
		return
	}

	if req.Platform == "" || req.StartDate == "" || req.EndDate == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("platform、start_date、end_date 为必填字段"))
		return
	}

	report, err := c.service.Analyze(r.Context(), &req)
	if err != nil {
		switch {
		case analyzer.IsInvalidInput(err):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, BadRequestResponse(err.Error()))
		case analyzer.IsInsufficientData(err):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, &APIResponse{Status: 422, Msg: err.Error()})
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, InternalErrorResponse("活动分析失败: "+err.Error()))
		}
		return
	}

	render.JSON(w, r, SuccessResponse("活动分析完成", report))
}

// GetReport 查询历史分析记录
// @Summary 查询分析记录详情
// @Description 根据记录ID查询已保存的分析报告
// @Tags 活动分析
// @Produce json
// @Param id path string true "分析记录ID"
// @Success 200 {object} APIResponse{data=models.AnalysisRecord}
// @Failure 404 {object} APIResponse
// @Router /activity/reports/{id} [get]
func (c *ActivityController) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := c.service.GetRecord(id)
	if err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, NotFoundResponse("分析记录不存在"))
		return
	}

	render.JSON(w, r, SuccessResponse("获取分析记录成功", record))
}

// ListReports 分页查询用户的分析记录
// @Summary 分页查询分析记录
// @Description 按用户分页查询历史分析记录，按创建时间倒序
// @Tags 活动分析
// @Produce json
// @Param user_id query string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Success 200 {object} PaginatedResponse{data=[]models.AnalysisRecord}
// @Failure 400 {object} APIResponse
// @Router /activity/reports [get]
func (c *ActivityController) ListReports(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("user_id 为必填参数"))
		return
	}

	page := cast.ToInt(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	size := cast.ToInt(r.URL.Query().Get("size"))
	if size <= 0 || size > 100 {
		size = 10
	}

	records, total, err := c.service.ListRecords(userID, page, size)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, InternalErrorResponse("查询分析记录失败: "+err.Error()))
		return
	}

	render.JSON(w, r, PagedResponse("查询分析记录成功", records, total, page, size))
}

// HealthKitImportRequest HealthKit 导出数据上传请求
type HealthKitImportRequest struct {
	UserID  string                     `json:"user_id"`
	Records []platform.HealthKitRecord `json:"records"`
}

// ImportAppleHealth 上传 HealthKit 导出数据
// @Summary 上传 Apple Health 导出数据
// @Description 接收 iOS 应用上传的 HealthKit 步数记录，供后续分析使用
// @Tags 活动分析
// @Accept json
// @Produce json
// @Param request body HealthKitImportRequest true "HealthKit 记录"
// @Success 200 {object} APIResponse{data=map[string]int}
// @Failure 400 {object} APIResponse
// @Router /activity/apple-health/import [post]
func (c *ActivityController) ImportAppleHealth(w http.ResponseWriter, r *http.Request) {
	var req HealthKitImportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("请求体解析失败: "+err.Error()))
		return
	}
	if req.UserID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("user_id 为必填字段"))
		return
	}

	accepted := c.apple.ImportExport(req.UserID, req.Records)
	render.JSON(w, r, SuccessResponse("HealthKit 数据导入完成", map[string]int{
		"received": len(req.Records),
		"accepted": accepted,
	}))
}
