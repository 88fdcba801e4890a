package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPixClientGenerate(t *testing.T) {
	var received PixRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(PixResponse{
			ShareURL: "https://pix.example.com/c/xyz",
			Code:     "br.gov.bcb.pix-code",
		})
	}))
	defer server.Close()

	client := NewPixClient(server.URL, zap.NewNop())

	resp, err := client.Generate(context.Background(), &PixRequest{
		KeyType: "cnpj",
		Key:     "12345678000199",
		Amount:  "R$ 1000,00",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://pix.example.com/c/xyz", resp.ShareURL)
	assert.Equal(t, "br.gov.bcb.pix-code", resp.Code)
	assert.Equal(t, "R$ 1000,00", received.Amount)
}

func TestPixClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewPixClient(server.URL, zap.NewNop())

	_, err := client.Generate(context.Background(), &PixRequest{})
	require.Error(t, err)
}

func TestBoletoClientGenerate(t *testing.T) {
	var received BoletoRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(BoletoResponse{URL: "https://boleto.example.com/doc/9"})
	}))
	defer server.Close()

	client := NewBoletoClient(server.URL, zap.NewNop())

	resp, err := client.Generate(context.Background(), &BoletoRequest{
		Bank:           "001",
		Valor:          "R$ 3000,00",
		DataVencimento: "15/03/2024",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://boleto.example.com/doc/9", resp.URL)
	assert.Equal(t, "001", received.Bank)
	assert.Equal(t, "15/03/2024", received.DataVencimento)
}

func TestBoletoClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewBoletoClient(server.URL, zap.NewNop())

	_, err := client.Generate(context.Background(), &BoletoRequest{})
	require.Error(t, err)
}
