package service

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/repository"
)

// rateFeedResponse represents the XML envelope returned by the central bank feed
type rateFeedResponse struct {
	XMLName xml.Name `xml:"envelope"`
	Body    struct {
		XMLName     xml.Name `xml:"Body"`
		GetRateResp struct {
			XMLName xml.Name `xml:"GetCursOnDateXMLResponse"`
			Result  struct {
				XMLName xml.Name `xml:"GetCursOnDateXMLResult"`
				Rates   string   `xml:",innerxml"`
			}
		}
	}
}

// RateSvc is an implementation of the service.RateService interface
type RateSvc struct {
	logger *logrus.Logger
	config *configs.Config
	repos  *repository.Repository
}

// NewRateService creates a new RateSvc
func NewRateService(deps Dependencies) *RateSvc {
	return &RateSvc{
		logger: deps.Logger,
		config: deps.Config,
		repos:  deps.Repos,
	}
}

// GetReferenceRate gets the current reference interest rate from the
// central bank feed. Product pricing uses this as the base when an admin
// does not set a rate explicitly.
func (s *RateSvc) GetReferenceRate(ctx context.Context) (float64, error) {
	// Prepare SOAP request
	soapEnvelope := `
	<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:web="http://web.cbr.ru/">
		<soapenv:Header/>
		<soapenv:Body>
			<web:GetCursOnDateXML>
				<web:On_date>` + time.Now().Format("2006-01-02") + `</web:On_date>
			</web:GetCursOnDateXML>
		</soapenv:Body>
	</soapenv:Envelope>`

	// Create the HTTP request
	req, err := http.NewRequestWithContext(ctx, "POST", s.config.RateFeed.APIURL, strings.NewReader(soapEnvelope))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/GetCursOnDateXML")

	// Send the request
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// Read the response
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse the XML response
	var feedResp rateFeedResponse
	err = xml.Unmarshal(body, &feedResp)
	if err != nil {
		return 0, fmt.Errorf("failed to parse XML response: %w", err)
	}

	// Use etree to parse the inner XML content
	doc := etree.NewDocument()
	err = doc.ReadFromString(feedResp.Body.GetRateResp.Result.Rates)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate data: %w", err)
	}

	// Find the key rate element
	keyRateElem := doc.FindElement("//ValCurs/Valute[@ID='R01010']")
	if keyRateElem == nil {
		return 0, errors.New("key rate element not found in response")
	}

	// Extract the value
	valueElem := keyRateElem.FindElement("Value")
	if valueElem == nil {
		return 0, errors.New("value element not found in key rate")
	}

	// Parse the value string to float (replace comma with dot)
	var keyRate float64
	valueStr := strings.Replace(valueElem.Text(), ",", ".", 1)
	_, err = fmt.Sscanf(valueStr, "%f", &keyRate)
	if err != nil {
		return 0, fmt.Errorf("failed to parse key rate value: %w", err)
	}

	s.logger.Infof("Retrieved reference rate from feed: %f%%", keyRate)

	return keyRate, nil
}
