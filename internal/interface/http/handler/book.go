package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBook  *appbook.CreateBookUseCase
	getBook     *appbook.GetBookUseCase
	updateBook  *appbook.UpdateBookUseCase
	deleteBook  *appbook.DeleteBookUseCase
	searchBooks *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBook *appbook.CreateBookUseCase,
	getBook *appbook.GetBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	searchBooks *appbook.SearchBooksUseCase,
) *BookHandler {
	return &BookHandler{
		createBook:  createBook,
		getBook:     getBook,
		updateBook:  updateBook,
		deleteBook:  deleteBook,
		searchBooks: searchBooks,
	}
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  作者或管理员新增图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	publishDate, err := req.ParsedPublishDate()
	if err != nil {
		response.Error(c, err)
		return
	}

	// 2. 调用应用层用例
	result, err := h.createBook.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Genre:       req.Genre,
		PublishDate: publishDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateBook 更新图书(部分更新)
// @Summary      更新图书
// @Description  只修改请求中出现的字段;publish_date传空串表示清空
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	publishDate, err := req.ParsedPublishDate()
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.updateBook.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Genre:       req.Genre,
		PublishDate: publishDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  同时删除该书的评分和评论;重复删除返回404
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SearchBooks 多条件检索
// @Summary      检索图书
// @Description  所有条件可选并以AND组合;书名/作者不区分大小写的子串匹配,类型精确匹配,出版日期闭区间
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        title query string false "书名关键字"
// @Param        author query string false "作者关键字"
// @Param        genre query string false "类型"
// @Param        publish_date_from query string false "出版日期起(yyyy-MM-dd)"
// @Param        publish_date_to query string false "出版日期止(yyyy-MM-dd)"
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量(默认20,最大100)"
// @Param        sort query []string false "排序,如publish_date,desc" collectionFormat(multi)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var q dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	from, to, err := q.DateRange()
	if err != nil {
		response.Error(c, err)
		return
	}
	sort, err := dto.ParseSort(q.Sort)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.searchBooks.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Title:           q.Title,
		Author:          q.Author,
		Genre:           q.Genre,
		PublishDateFrom: from,
		PublishDateTo:   to,
		Page:            q.Page,
		Size:            q.Size,
		Sort:            sort,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Items, result.Total, result.Page, result.Size)
}
