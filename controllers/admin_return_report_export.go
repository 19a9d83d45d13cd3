package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/storeops/retaildesk/config"
	"github.com/storeops/retaildesk/services"
	"github.com/storeops/retaildesk/utils"
)

// reportWindow resolves the period query into a date range
func reportWindow(c *gin.Context) (string, *time.Time, *time.Time, bool) {
	period := c.DefaultQuery("period", "day")
	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return "", nil, nil, false
	}
	return period, &startDate, &endDate, true
}

// DownloadReturnsReportExcel exports the returns register for a period as xlsx
func DownloadReturnsReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadReturnsReportExcel called")

	period, startDate, endDate, ok := reportWindow(c)
	if !ok {
		return
	}
	utils.LogDebug("Generating Excel returns report for period: %s", period)

	svc := services.NewReturnService(config.DB)
	returns, _, err := svc.LoadReturns(services.ReturnFilters{DateFrom: startDate, DateTo: endDate}, -1, 0)
	if err != nil {
		utils.LogError("Failed to fetch returns: %v", err)
		handleServiceError(c, err)
		return
	}
	utils.LogDebug("Retrieved %d returns for Excel report", len(returns))

	var totalRefunded, totalStoreCredits float64
	for _, ret := range returns {
		totalRefunded += ret.RefundAmount
		totalStoreCredits += ret.StoreCreditAmount
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Returns Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("RETAILDESK - Returns Report")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Period: " + period + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Return ID", "Sale ID", "Customer ID", "Date", "Type", "Reason", "Status", "Refund Method", "Items", "Refund Amount", "Store Credit"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, ret := range returns {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(ret.ID))
		row.AddCell().SetInt(int(ret.SaleID))
		row.AddCell().SetInt(int(ret.CustomerID))
		row.AddCell().SetString(ret.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(ret.ReturnType)
		row.AddCell().SetString(ret.ReturnReason)
		row.AddCell().SetString(ret.Status)
		row.AddCell().SetString(ret.RefundMethod)
		row.AddCell().SetInt(len(ret.Items))
		row.AddCell().SetFloat(ret.RefundAmount)
		row.AddCell().SetFloat(ret.StoreCreditAmount)
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	summaryData := [][]string{
		{"Total Requests", fmt.Sprintf("%d", len(returns))},
		{"Total Refunded", fmt.Sprintf("%.2f", totalRefunded)},
		{"Total Store Credits", fmt.Sprintf("%.2f", totalStoreCredits)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=returns_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel returns report for period %s", period)
}

// DownloadReturnsReportPDF exports the returns register for a period as PDF
func DownloadReturnsReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadReturnsReportPDF called")

	period, startDate, endDate, ok := reportWindow(c)
	if !ok {
		return
	}
	utils.LogDebug("Generating PDF returns report for period: %s", period)

	svc := services.NewReturnService(config.DB)
	returns, _, err := svc.LoadReturns(services.ReturnFilters{DateFrom: startDate, DateTo: endDate}, -1, 0)
	if err != nil {
		utils.LogError("Failed to fetch returns: %v", err)
		handleServiceError(c, err)
		return
	}

	var totalRefunded, totalStoreCredits float64
	for _, ret := range returns {
		totalRefunded += ret.RefundAmount
		totalStoreCredits += ret.StoreCreditAmount
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "RETAILDESK - Returns Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Period: "+period+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(12)

	headers := []string{"ID", "Sale", "Customer", "Date", "Type", "Reason", "Status", "Method", "Refund", "Credit"}
	colWidths := []float64{15, 15, 22, 32, 25, 28, 25, 30, 25, 25}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, ret := range returns {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", ret.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", ret.SaleID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%d", ret.CustomerID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, ret.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, ret.ReturnType, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, ret.ReturnReason, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, ret.Status, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, ret.RefundMethod, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[8], 8, fmt.Sprintf("%.2f", ret.RefundAmount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[9], 8, fmt.Sprintf("%.2f", ret.StoreCreditAmount), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(50, 8, "Total Requests", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%d", len(returns)), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.CellFormat(50, 8, "Total Refunded", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", totalRefunded), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.CellFormat(50, 8, "Total Store Credits", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", totalStoreCredits), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=returns_report_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF returns report for period %s", period)
}
