package orderControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/blueprint-wear/storefront-api/models"
)

// ExportOrdersToExcel handles GET /admin/orders/export and streams every
// order as an .xlsx download.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"Number", "CustomerName", "Email", "Phone",
			"TotalCents", "Currency", "PaymentStatus",
			"City", "Warehouse", "DeliveryType", "TTN",
			"Items", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, order := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(order.Number)
			row.AddCell().SetValue(order.CustomerName)
			row.AddCell().SetValue(order.Email)
			row.AddCell().SetValue(order.Phone)
			row.AddCell().SetValue(order.TotalCents)
			row.AddCell().SetValue(order.Currency)
			row.AddCell().SetValue(string(order.PaymentStatus))
			row.AddCell().SetValue(order.NPCity)
			row.AddCell().SetValue(order.NPWarehouse)
			row.AddCell().SetValue(string(order.NPDeliveryType))
			row.AddCell().SetValue(order.ShipmentTTN)

			var lines []string
			for _, item := range order.Items {
				lines = append(lines, item.Slug+" x"+strconv.Itoa(item.Qty))
			}
			row.AddCell().SetValue(strings.Join(lines, ", "))

			row.AddCell().SetValue(order.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
