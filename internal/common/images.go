package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/storage"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

// ReadImageUpload parses the multipart form and decodes the uploaded image
// under the given field name.
func ReadImageUpload(ctx context.Context, field string) (image.Image, string, string, error) {
	req := xcontext.HTTPRequest(ctx)
	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, "", "", errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(field)
	if err != nil {
		return nil, "", "", errorx.New(errorx.BadRequest, "Error retrieving the file")
	}
	defer file.Close()

	if header.Size > xcontext.Configs(ctx).File.MaxSize {
		return nil, "", "", errorx.New(errorx.BadRequest, "File is too large")
	}

	mime := header.Header.Get("Content-Type")
	img, err := decodeImg(mime, file)
	if err != nil {
		return nil, "", "", errorx.New(errorx.BadRequest, "We just accept jpeg, gif or png")
	}

	return img, mime, header.Filename, nil
}

// ResizeAndUpload scales the image to the given width, keeping the aspect
// ratio, and stores the result.
func ResizeAndUpload(
	ctx context.Context,
	fileStorage storage.Storage,
	img image.Image,
	width uint,
	prefix, mime, filename string,
) (*storage.UploadResponse, error) {
	if width > 0 {
		img = resize.Resize(width, 0, img, resize.Lanczos2)
	}

	b, err := encodeImg(mime, img)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
		return nil, errorx.Unknown
	}

	resp, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Bucket:   xcontext.Configs(ctx).Storage.Bucket,
		Prefix:   prefix,
		FileName: filename,
		Mime:     mime,
		Data:     b,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return resp, nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png", "application/octet-stream":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("unsupported content type %s", mime)
	}

	return img, err
}

func encodeImg(mime string, img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)

	var err error
	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png", "application/octet-stream":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("unsupported content type %s", mime)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
