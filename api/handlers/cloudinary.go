package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	cldapi "github.com/cloudinary/cloudinary-go/v2/api"

	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/models"
)

// UploadSigner signs direct browser uploads
type UploadSigner interface {
	Sign(now time.Time) (models.UploadSignatureResponse, error)
}

// CloudinarySigner signs uploads for one Cloudinary account and upload preset
type CloudinarySigner struct {
	cloudName    string
	apiKey       string
	apiSecret    string
	uploadPreset string
}

// NewCloudinarySigner reads the account from a cloudinary:// URL
func NewCloudinarySigner(cloudinaryURL, uploadPreset string) (*CloudinarySigner, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("parse cloudinary url: %w", err)
	}
	return &CloudinarySigner{
		cloudName:    cld.Config.Cloud.CloudName,
		apiKey:       cld.Config.Cloud.APIKey,
		apiSecret:    cld.Config.Cloud.APISecret,
		uploadPreset: uploadPreset,
	}, nil
}

// Sign returns the parameters a browser needs to upload straight to Cloudinary
func (s *CloudinarySigner) Sign(now time.Time) (models.UploadSignatureResponse, error) {
	timestamp := strconv.FormatInt(now.Unix(), 10)
	params := url.Values{"timestamp": []string{timestamp}}
	if s.uploadPreset != "" {
		params.Set("upload_preset", s.uploadPreset)
	}

	signature, err := cldapi.SignParameters(params, s.apiSecret)
	if err != nil {
		return models.UploadSignatureResponse{}, err
	}
	return models.UploadSignatureResponse{
		Timestamp:    timestamp,
		Signature:    signature,
		APIKey:       s.apiKey,
		CloudName:    s.cloudName,
		UploadPreset: s.uploadPreset,
	}, nil
}

// CloudinaryHandler handles Cloudinary related requests
type CloudinaryHandler struct {
	Signer UploadSigner
}

// GenerateSignature generates a signature for Cloudinary uploads
func (c CloudinaryHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	if c.Signer == nil {
		config.ErrorStatus("uploads are not configured", http.StatusServiceUnavailable, w, nil)
		return
	}
	resp, err := c.Signer.Sign(time.Now())
	if err != nil {
		config.ErrorStatus("failed to sign upload", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, resp)
}
