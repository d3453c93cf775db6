package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

const (
	errTextRequired = "Text field is required"

	resultNote = "Comprehend is used when available; errors are captured in 'comprehend_error' and results are still stored in S3."
)

// ErrorResponse is the body of every 400 and 500 response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the body of a 200 response.
type SuccessResponse struct {
	Analysis   *Record `json:"analysis"`
	S3Location string  `json:"s3_location"`
	Note       string  `json:"note"`
}

func responseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

func jsonResponse(statusCode int, body any) (events.APIGatewayProxyResponse, error) {
	responseBody, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    responseHeaders(),
		Body:       string(responseBody),
	}, nil
}

func createErrorResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	responseBody, _ := json.Marshal(ErrorResponse{Error: message})
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    responseHeaders(),
		Body:       string(responseBody),
	}
}

func badRequest() events.APIGatewayProxyResponse {
	return createErrorResponse(http.StatusBadRequest, errTextRequired)
}
