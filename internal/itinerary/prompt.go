package itinerary

import (
	"encoding/json"
	"fmt"
	"strconv"

	"travelmate/internal/models/request_models"
)

// BuildPrompt renders the generation instruction for a request.
func BuildPrompt(req request_models.TravelRequest) string {
	budget := strconv.FormatFloat(req.Budget, 'f', -1, 64)

	return fmt.Sprintf(`你是一名专业旅行规划师。为如下需求生成详细旅行计划，并且务必给出清晰的费用估算：

目的地：%s
出发日期：%s
返回日期：%s
总预算（上限，CNY）：%s
同行人数：%d
旅行偏好：%s

输出要求（必须全部满足）：
1) 每个 activities 项必须包含数值型 estimatedCost（CNY，数字类型，不要字符串）。
2) 如果无法精确价格，请给出合理估算，不能留空或为 null。
3) 计算并返回 totalEstimatedCost（所有天数的 estimatedCost 之和，CNY）。
4) 保持花费估算不超过总预算的合理范围，尽量贴合预算。
5) 仅返回一个合法 JSON 对象，不要包含任何 markdown 标记（例如代码块）或额外文本。

严格按以下 JSON 结构返回（字段名与类型必须一致）：
{
  "destination": %s,
  "duration": 整数天数,
  "budget": %s,
  "travelers": %d,
  "preferences": %s,
  "days": [
    {
      "date": "YYYY-MM-DD",
      "activities": [
        {
          "time": "HH:MM",
          "activity": "活动名称",
          "location": "地点",
          "description": "简要描述",
          "estimatedCost": 数字
        }
      ]
    }
  ],
  "totalEstimatedCost": 数字,
  "recommendations": ["建议1", "建议2", "建议3"]
}`,
		req.Destination, req.StartDate, req.EndDate, budget, req.Travelers, req.Preferences,
		quote(req.Destination), budget, req.Travelers, quote(req.Preferences))
}

// quote renders s as a JSON string literal so user text cannot break the schema example.
func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}
