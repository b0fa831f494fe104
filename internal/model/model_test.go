package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Job
		want Job
	}{
		{
			name: "all defaults from empty",
			in:   Job{ID: "j1", Title: "T", Company: "C"},
			want: Job{
				ID: "j1", Title: "T", Company: "C",
				Category: "事业单位", Region: "全国", Province: "未知",
				District: "全市", Tags: []string{}, ApplyLink: "#", SourceLink: "#",
			},
		},
		{
			name: "links fall back to link",
			in:   Job{ID: "j2", Link: "https://example.com/a", City: "上海"},
			want: Job{
				ID: "j2", Link: "https://example.com/a", City: "上海",
				Category: "事业单位", Region: "全国", Province: "上海",
				District: "全市", Tags: []string{},
				ApplyLink: "https://example.com/a", SourceLink: "https://example.com/a",
			},
		},
		{
			name: "explicit values kept",
			in: Job{
				ID: "j3", City: "南京", Province: "江苏", Region: "华东",
				Category: "选调生", District: "鼓楼区", Views: 42,
				Tags: []string{"选调"}, Link: "https://example.com/x",
				ApplyLink: "https://example.com/apply", SourceLink: "https://example.com/src",
			},
			want: Job{
				ID: "j3", City: "南京", Province: "江苏", Region: "华东",
				Category: "选调生", District: "鼓楼区", Views: 42,
				Tags: []string{"选调"}, Link: "https://example.com/x",
				ApplyLink: "https://example.com/apply", SourceLink: "https://example.com/src",
			},
		},
		{
			name: "negative views clamp to zero",
			in:   Job{ID: "j4", Views: -3, Link: "#"},
			want: Job{
				ID: "j4", Views: 0, Link: "#",
				Category: "事业单位", Region: "全国", Province: "未知",
				District: "全市", Tags: []string{}, ApplyLink: "#", SourceLink: "#",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.Normalize()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserCanAccess(t *testing.T) {
	assert.False(t, (&User{Role: UserRoleUser}).CanAccess())
	assert.True(t, (&User{Role: UserRoleUser, Entitled: true}).CanAccess())
	assert.True(t, (&User{Role: UserRoleAdmin}).CanAccess())
	assert.True(t, (&User{Role: UserRoleAdmin, Entitled: true}).CanAccess())
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := &Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(time.Hour)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(2*time.Hour)))
}
