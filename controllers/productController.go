package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"github.com/IsuruKaushika/Ogee-Era/initializers"
	"github.com/IsuruKaushika/Ogee-Era/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// getAWSUploader returns a configured S3 uploader for product images.
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func imageBucket() string {
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		return bucket
	}
	return "ogee-era"
}

func uploadImage(uploader *manager.Uploader, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := uuid.NewString() + "-" + file.Filename
	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(imageBucket()),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", err
	}
	return result.Location, nil
}

// uploadImages pushes the product images to S3 concurrently and returns their
// URLs in the original slot order.
func uploadImages(uploader *manager.Uploader, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, len(files))
	var group errgroup.Group

	for i, file := range files {
		group.Go(func() error {
			url, err := uploadImage(uploader, file)
			if err != nil {
				return fmt.Errorf("upload %s: %w", file.Filename, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// productImageFiles collects the image1..image4 slots from the multipart
// form, skipping empty ones.
func productImageFiles(form *multipart.Form) []*multipart.FileHeader {
	var files []*multipart.FileHeader
	for _, field := range []string{"image1", "image2", "image3", "image4"} {
		if headers := form.File[field]; len(headers) > 0 {
			files = append(files, headers[0])
		}
	}
	return files
}

// AddProduct creates a catalog entry from a multipart form: text fields plus
// up to four images and an optional size chart.
func AddProduct(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	price, err := strconv.ParseFloat(ctx.PostForm("price"), 64)
	if err != nil || price <= 0 {
		respondWithError(ctx, http.StatusBadRequest, "Invalid price", err)
		return
	}

	discount := 0
	if d := ctx.PostForm("discount"); d != "" {
		discount, err = strconv.Atoi(d)
		if err != nil || discount < 0 || discount > 100 {
			respondWithError(ctx, http.StatusBadRequest, "Discount must be between 0 and 100", err)
			return
		}
	}

	sizes := ctx.PostForm("sizes")
	if sizes == "" {
		sizes = "[]"
	}
	if !json.Valid([]byte(sizes)) {
		respondWithError(ctx, http.StatusBadRequest, "Sizes must be a JSON array", nil)
		return
	}

	stockStatus := ctx.PostForm("stockStatus")
	if stockStatus == "" {
		stockStatus = models.StockInStock
	}
	if !models.IsValidStockStatus(stockStatus) {
		respondWithError(ctx, http.StatusBadRequest, "Unrecognized stock status", nil)
		return
	}

	files := productImageFiles(form)
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No product images uploaded", nil)
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	urls, err := uploadImages(uploader, files)
	if err != nil {
		log.Println("Image upload error:", err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload product images", err)
		return
	}

	sizeChartURL := ""
	if headers := form.File["sizeChart"]; len(headers) > 0 {
		sizeChartURL, err = uploadImage(uploader, headers[0])
		if err != nil {
			log.Println("Size chart upload error:", err)
			respondWithError(ctx, http.StatusInternalServerError, "Failed to upload size chart", err)
			return
		}
	}

	imagesJSON, err := json.Marshal(urls)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to encode image list", err)
		return
	}

	product := models.Product{
		Name:        ctx.PostForm("name"),
		Description: ctx.PostForm("description"),
		Price:       price,
		Discount:    discount,
		Category:    ctx.PostForm("category"),
		SubCategory: ctx.PostForm("subCategory"),
		Sizes:       datatypes.JSON(sizes),
		Images:      datatypes.JSON(imagesJSON),
		Bestseller:  ctx.PostForm("bestseller") == "true",
		StockStatus: stockStatus,
		SizeChart:   sizeChartURL,
	}

	if product.Name == "" || product.Description == "" || product.Category == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing required product fields", nil)
		return
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product Added Successfully", "id": product.ID})
}

// UpdateProduct edits catalog fields and optionally replaces image slots.
// Order line items are snapshots, so past orders are unaffected.
func UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", err)
		}
		return
	}

	if name := ctx.PostForm("name"); name != "" {
		product.Name = name
	}
	if description := ctx.PostForm("description"); description != "" {
		product.Description = description
	}
	if priceStr := ctx.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			respondWithError(ctx, http.StatusBadRequest, "Invalid price", err)
			return
		}
		product.Price = price
	}
	if d := ctx.PostForm("discount"); d != "" {
		discount, err := strconv.Atoi(d)
		if err != nil || discount < 0 || discount > 100 {
			respondWithError(ctx, http.StatusBadRequest, "Discount must be between 0 and 100", err)
			return
		}
		product.Discount = discount
	}
	if category := ctx.PostForm("category"); category != "" {
		product.Category = category
	}
	if subCategory := ctx.PostForm("subCategory"); subCategory != "" {
		product.SubCategory = subCategory
	}
	if sizes := ctx.PostForm("sizes"); sizes != "" {
		if !json.Valid([]byte(sizes)) {
			respondWithError(ctx, http.StatusBadRequest, "Sizes must be a JSON array", nil)
			return
		}
		product.Sizes = datatypes.JSON(sizes)
	}
	if bestseller := ctx.PostForm("bestseller"); bestseller != "" {
		product.Bestseller = bestseller == "true"
	}
	if stockStatus := ctx.PostForm("stockStatus"); stockStatus != "" {
		if !models.IsValidStockStatus(stockStatus) {
			respondWithError(ctx, http.StatusBadRequest, "Unrecognized stock status", nil)
			return
		}
		product.StockStatus = stockStatus
	}

	if form, err := ctx.MultipartForm(); err == nil {
		if files := productImageFiles(form); len(files) > 0 {
			uploader, err := getAWSUploader()
			if err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
				return
			}
			urls, err := uploadImages(uploader, files)
			if err != nil {
				log.Println("Image upload error:", err)
				respondWithError(ctx, http.StatusInternalServerError, "Failed to upload product images", err)
				return
			}
			imagesJSON, err := json.Marshal(urls)
			if err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to encode image list", err)
				return
			}
			product.Images = datatypes.JSON(imagesJSON)
		}
	}

	if err := initializers.DB.Save(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Updated Successfully"})
}

// RemoveProduct deletes a catalog entry.
func RemoveProduct(ctx *gin.Context) {
	var removeData struct {
		ID int `json:"id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&removeData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result := initializers.DB.Delete(&models.Product{}, removeData.ID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to remove product", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Removed Successfully"})
}

// GetProducts lists the catalog with search and pagination.
func GetProducts(ctx *gin.Context) {
	var products []models.Product

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	query := initializers.DB.Model(&models.Product{})

	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	result := query.Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	var count int64
	initializers.DB.Model(&models.Product{}).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetProduct returns a single catalog entry.
func GetProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	result := initializers.DB.First(&product, productID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}
