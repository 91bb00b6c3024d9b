package errors

import "errors"

// ErrRecordNotFound 저장소에 해당 문서가 없음
var ErrRecordNotFound = errors.New("레코드를 찾을 수 없습니다")

// ErrStoreUnavailable 저장소 접근 실패
var ErrStoreUnavailable = errors.New("저장소에 접근할 수 없습니다")

// ErrDuplicateRecord 고유 키 중복
var ErrDuplicateRecord = errors.New("이미 존재하는 레코드입니다")
