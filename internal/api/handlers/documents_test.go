package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/document-service/internal/api/dto"
	"github.com/unifiedui/document-service/internal/api/handlers"
	domainerrors "github.com/unifiedui/document-service/internal/domain/errors"
	"github.com/unifiedui/document-service/internal/domain/models"
	"github.com/unifiedui/document-service/internal/infrastructure/docdb/memory"
	"github.com/unifiedui/document-service/internal/mocks"
	"github.com/unifiedui/document-service/internal/services/documents"
	"github.com/unifiedui/document-service/internal/testutils"
)

func setupDocumentsRouter(t *testing.T, db *memory.Database) *gin.Engine {
	t.Helper()

	accessor, err := documents.NewAccessor(&documents.Config[models.Document]{
		Database: db,
		Views:    db,
		Factory:  models.BuildDocument,
	})
	require.NoError(t, err)

	return routerFor(handlers.NewDocumentsHandler(accessor))
}

func routerFor(handler *handlers.DocumentsHandler) *gin.Engine {
	router := testutils.SetupTestRouter()
	router.GET("/documents/*id", handler.GetDocument)
	router.POST("/documents/bulk", handler.GetDocuments)
	router.GET("/views/all/count", handler.CountAll)
	router.GET("/views/all/first", handler.FirstOfAll)
	router.GET("/views/all/last", handler.LastOfAll)
	return router
}

func TestDocumentsHandler_GetDocument(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodGet, "/documents/a", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.DocumentResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, testutils.TestDocumentA, response.ID)
	assert.Equal(t, float64(1), response.Fields["x"])
	assert.NotContains(t, response.Fields, models.IDKey)
}

func TestDocumentsHandler_GetDocument_NotFound(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodGet, "/documents/c", nil, nil)

	testutils.AssertStatusCode(t, http.StatusNotFound, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, domainerrors.ErrCodeNotFound, response.Code)
	assert.Equal(t, testutils.TestMissingID, response.Details)
}

func TestDocumentsHandler_GetDocument_TolerantMiss(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodGet, "/documents/c?tolerant=true", nil, nil)

	testutils.AssertStatusCode(t, http.StatusNoContent, w)
	assert.Empty(t, w.Body.String())
}

func TestDocumentsHandler_GetDocument_TolerantHit(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodGet, "/documents/b?tolerant=true", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.DocumentResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, testutils.TestDocumentB, response.ID)
}

func TestDocumentsHandler_GetDocument_InvalidTolerant(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodGet, "/documents/a?tolerant=maybe", nil, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
}

func TestDocumentsHandler_GetDocument_BlankID(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodGet, "/documents/%20", nil, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, domainerrors.ErrCodeValidation, response.Code)
}

func TestDocumentsHandler_GetDocuments(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	body := dto.BulkGetRequest{IDs: []string{"a", "b", "c"}}
	w := testutils.PerformRequest(router, http.MethodPost, "/documents/bulk", body, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.BulkGetResponse
	testutils.ParseJSONResponse(t, w, &response)
	require.Equal(t, 2, response.Total)
	assert.Equal(t, "a", response.Documents[0].ID)
	assert.Equal(t, "b", response.Documents[1].ID)
}

func TestDocumentsHandler_GetDocuments_NoneFound(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodPost, "/documents/bulk", dto.BulkGetRequest{IDs: []string{"c"}}, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.BulkGetResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, 0, response.Total)
	assert.NotNil(t, response.Documents)
	assert.Empty(t, response.Documents)
}

func TestDocumentsHandler_GetDocuments_StrictNoneFound(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	body := dto.BulkGetRequest{IDs: []string{"c"}, Strict: true}
	w := testutils.PerformRequest(router, http.MethodPost, "/documents/bulk", body, nil)

	testutils.AssertStatusCode(t, http.StatusNotFound, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, domainerrors.ErrCodeDocumentsNotFound, response.Code)
}

func TestDocumentsHandler_GetDocuments_InvalidBody(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodPost, "/documents/bulk", "{not json", nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, domainerrors.ErrCodeBadRequest, response.Code)
}

func TestDocumentsHandler_GetDocuments_MissingIDs(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodPost, "/documents/bulk", `{"strict": true}`, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
}

func TestDocumentsHandler_GetDocuments_BlankIDSkipped(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	body := dto.BulkGetRequest{IDs: []string{"a", ""}, Strict: true}
	w := testutils.PerformRequest(router, http.MethodPost, "/documents/bulk", body, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.BulkGetResponse
	testutils.ParseJSONResponse(t, w, &response)
	require.Equal(t, 1, response.Total)
	assert.Equal(t, "a", response.Documents[0].ID)
}

func TestDocumentsHandler_GetDocument_IDWithSlash(t *testing.T) {
	db := testutils.NewSeededDatabase(t)
	require.NoError(t, db.Put("_design/widgets", models.RawRecord{"language": "javascript"}))
	router := setupDocumentsRouter(t, db)

	w := testutils.PerformRequest(router, http.MethodGet, "/documents/_design/widgets", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.DocumentResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "_design/widgets", response.ID)
	assert.Equal(t, "javascript", response.Fields["language"])
}

func TestDocumentsHandler_GetDocument_EmptyID(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodGet, "/documents/", nil, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
}

func TestDocumentsHandler_View(t *testing.T) {
	router := setupDocumentsRouter(t, testutils.NewSeededDatabase(t))

	w := testutils.PerformRequest(router, http.MethodGet, "/views/all/count", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var count dto.CountResponse
	testutils.ParseJSONResponse(t, w, &count)
	assert.Equal(t, int64(2), count.Count)

	w = testutils.PerformRequest(router, http.MethodGet, "/views/all/first", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var first dto.DocumentResponse
	testutils.ParseJSONResponse(t, w, &first)
	assert.Equal(t, "a", first.ID)

	w = testutils.PerformRequest(router, http.MethodGet, "/views/all/last", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var last dto.DocumentResponse
	testutils.ParseJSONResponse(t, w, &last)
	assert.Equal(t, "b", last.ID)
}

func TestDocumentsHandler_View_Empty(t *testing.T) {
	router := setupDocumentsRouter(t, memory.NewDatabase())

	w := testutils.PerformRequest(router, http.MethodGet, "/views/all/count", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)

	for _, path := range []string{"/views/all/first", "/views/all/last"} {
		w = testutils.PerformRequest(router, http.MethodGet, path, nil, nil)
		testutils.AssertStatusCode(t, http.StatusNotFound, w)
	}
}

func TestDocumentsHandler_DatabaseFailure(t *testing.T) {
	mockDocDB := mocks.NewMockDocDBClient()
	mockDocDB.GetDatabase().On("Get", mock.Anything, "a").Return(nil, assert.AnError)

	accessor, err := documents.NewAccessor(&documents.Config[models.Document]{
		Database: mockDocDB.Database(),
		Views:    mockDocDB.Views(),
		Factory:  models.BuildDocument,
	})
	require.NoError(t, err)
	router := routerFor(handlers.NewDocumentsHandler(accessor))

	w := testutils.PerformRequest(router, http.MethodGet, "/documents/a", nil, nil)

	testutils.AssertStatusCode(t, http.StatusInternalServerError, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, domainerrors.ErrCodeInternal, response.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestDocumentsHandler_DatabaseNotConfigured(t *testing.T) {
	accessor, err := documents.NewAccessor(&documents.Config[models.Document]{
		Factory: models.BuildDocument,
	})
	require.NoError(t, err)
	router := routerFor(handlers.NewDocumentsHandler(accessor))

	w := testutils.PerformRequest(router, http.MethodGet, "/documents/a", nil, nil)
	testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)

	w = testutils.PerformRequest(router, http.MethodGet, "/views/all/count", nil, nil)
	testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)
}
