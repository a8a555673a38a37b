package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/store"
	"github.com/healthed-zw/backend/utils"
)

const channelsCachePrefix = "cache:community:channels"

// CommunityController manages channels, posts, replies and like toggles.
// Posts live in a channel-keyed map; replies in a post-keyed map; likes in a
// set keyed "<postID>-<username>". The posts/likes/replies counters on the
// parent records are denormalized and updated alongside the child records.
type CommunityController struct {
	kv store.KV
}

// NewCommunityController creates a CommunityController.
func NewCommunityController(kv store.KV) *CommunityController {
	return &CommunityController{kv: kv}
}

// ListChannels returns the channel set.
func (c *CommunityController) ListChannels(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(channelsCachePrefix); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var channels []models.Channel
	if _, err := store.GetJSON(ctx.Request.Context(), c.kv, store.KeyChannels, &channels); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to get channels")
		return
	}
	if channels == nil {
		channels = []models.Channel{}
	}

	payload := gin.H{"channels": channels}
	utils.CacheSetJSON(channelsCachePrefix, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// ListPosts returns the posts of one channel, newest first.
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	channelID := strings.TrimSpace(ctx.Param("postId"))
	if channelID == "" {
		utils.Error(ctx, http.StatusBadRequest, 40060, "missing channel id")
		return
	}

	allPosts := map[string][]models.Post{}
	if _, err := store.GetJSON(ctx.Request.Context(), c.kv, store.KeyPosts, &allPosts); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to get posts")
		return
	}

	posts := allPosts[channelID]
	if posts == nil {
		posts = []models.Post{}
	}
	utils.Success(ctx, gin.H{"posts": posts})
}

// CreatePost prepends a post to its channel and bumps the channel's post
// counter. The two writes are separate atomic updates; the counter is
// maintained by convention, not a cross-key transaction.
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	var req struct {
		ChannelID string `json:"channel_id" binding:"required"`
		Title     string `json:"title" binding:"required,min=1"`
		Content   string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, "invalid request payload")
		return
	}

	username, ok := getUsername(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40160, "unauthorized")
		return
	}

	post := models.Post{
		ID:        utils.NewID(),
		ChannelID: req.ChannelID,
		Title:     utils.Sanitize(strings.TrimSpace(req.Title)),
		Content:   utils.Sanitize(req.Content),
		Author:    username,
		CreatedAt: nowStamp(),
	}

	_, err := store.Mutate(ctx.Request.Context(), c.kv, store.KeyPosts,
		func(cur map[string][]models.Post) (map[string][]models.Post, error) {
			if cur == nil {
				cur = map[string][]models.Post{}
			}
			cur[req.ChannelID] = append([]models.Post{post}, cur[req.ChannelID]...)
			return cur, nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to create post")
		return
	}

	_, err = store.Mutate(ctx.Request.Context(), c.kv, store.KeyChannels,
		func(cur []models.Channel) ([]models.Channel, error) {
			for i := range cur {
				if strconv.Itoa(cur[i].ID) == req.ChannelID {
					cur[i].Posts++
					break
				}
			}
			return cur, nil
		})
	if err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("failed to bump channel post count channel=%s err=%v", req.ChannelID, err)
	}

	utils.InvalidateByPrefix(channelsCachePrefix)
	utils.Success(ctx, gin.H{"post": post})
}

// ToggleLike flips the caller's like on a post. Liking twice returns to the
// original state: the membership record is removed and the counter floored
// at zero.
func (c *CommunityController) ToggleLike(ctx *gin.Context) {
	postID := strings.TrimSpace(ctx.Param("postId"))

	var req struct {
		ChannelID string `json:"channel_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "invalid request payload")
		return
	}

	username, ok := getUsername(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40161, "unauthorized")
		return
	}

	if !c.postExists(ctx, req.ChannelID, postID) {
		utils.Error(ctx, http.StatusNotFound, 40460, "post not found")
		return
	}

	likeKey := models.LikeKey(postID, username)
	liked := false
	_, err := store.Mutate(ctx.Request.Context(), c.kv, store.KeyLikes,
		func(cur map[string]models.Like) (map[string]models.Like, error) {
			if cur == nil {
				cur = map[string]models.Like{}
			}
			if _, exists := cur[likeKey]; exists {
				delete(cur, likeKey)
				liked = false
			} else {
				cur[likeKey] = models.Like{PostID: postID, Username: username, CreatedAt: nowStamp()}
				liked = true
			}
			return cur, nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to toggle like")
		return
	}

	likes := 0
	_, err = store.Mutate(ctx.Request.Context(), c.kv, store.KeyPosts,
		func(cur map[string][]models.Post) (map[string][]models.Post, error) {
			posts := cur[req.ChannelID]
			for i := range posts {
				if posts[i].ID == postID {
					if liked {
						posts[i].Likes++
					} else if posts[i].Likes > 0 {
						posts[i].Likes--
					}
					likes = posts[i].Likes
					break
				}
			}
			cur[req.ChannelID] = posts
			return cur, nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50064, "failed to update like count")
		return
	}

	utils.Success(ctx, gin.H{"liked": liked, "likes": likes})
}

// LikedCheck reports whether a user has liked a post.
func (c *CommunityController) LikedCheck(ctx *gin.Context) {
	postID := strings.TrimSpace(ctx.Param("postId"))
	username := strings.TrimSpace(ctx.Param("username"))

	allLikes := map[string]models.Like{}
	if _, err := store.GetJSON(ctx.Request.Context(), c.kv, store.KeyLikes, &allLikes); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50068, "failed to get likes")
		return
	}

	_, liked := allLikes[models.LikeKey(postID, username)]
	utils.Success(ctx, gin.H{"liked": liked})
}

// ListReplies returns the replies of one post in insertion order.
func (c *CommunityController) ListReplies(ctx *gin.Context) {
	postID := strings.TrimSpace(ctx.Param("postId"))

	allReplies := map[string][]models.Reply{}
	if _, err := store.GetJSON(ctx.Request.Context(), c.kv, store.KeyReplies, &allReplies); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50065, "failed to get replies")
		return
	}

	replies := allReplies[postID]
	if replies == nil {
		replies = []models.Reply{}
	}
	utils.Success(ctx, gin.H{"replies": replies})
}

// CreateReply appends a reply under a post and bumps the post's reply
// counter inside the channel collection.
func (c *CommunityController) CreateReply(ctx *gin.Context) {
	postID := strings.TrimSpace(ctx.Param("postId"))

	var req struct {
		ChannelID string `json:"channel_id" binding:"required"`
		Content   string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40063, "invalid request payload")
		return
	}

	username, ok := getUsername(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40162, "unauthorized")
		return
	}

	reply := models.Reply{
		ID:        utils.NewID(),
		PostID:    postID,
		Content:   utils.Sanitize(req.Content),
		Author:    username,
		CreatedAt: nowStamp(),
	}

	_, err := store.Mutate(ctx.Request.Context(), c.kv, store.KeyReplies,
		func(cur map[string][]models.Reply) (map[string][]models.Reply, error) {
			if cur == nil {
				cur = map[string][]models.Reply{}
			}
			cur[postID] = append(cur[postID], reply)
			return cur, nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50066, "failed to create reply")
		return
	}

	_, err = store.Mutate(ctx.Request.Context(), c.kv, store.KeyPosts,
		func(cur map[string][]models.Post) (map[string][]models.Post, error) {
			if cur == nil {
				return cur, nil
			}
			posts := cur[req.ChannelID]
			for i := range posts {
				if posts[i].ID == postID {
					posts[i].Replies++
					break
				}
			}
			cur[req.ChannelID] = posts
			return cur, nil
		})
	if err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("failed to bump reply count post=%s err=%v", postID, err)
	}

	utils.Success(ctx, gin.H{"reply": reply})
}

// InitChannels replaces the channel set with the default seed.
func (c *CommunityController) InitChannels(ctx *gin.Context) {
	if err := store.SetJSON(ctx.Request.Context(), c.kv, store.KeyChannels, models.DefaultChannels()); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50067, "failed to initialize channels")
		return
	}
	utils.InvalidateByPrefix(channelsCachePrefix)
	utils.Success(ctx, gin.H{"message": "community channels initialized"})
}

func (c *CommunityController) postExists(ctx *gin.Context, channelID, postID string) bool {
	allPosts := map[string][]models.Post{}
	if _, err := store.GetJSON(ctx.Request.Context(), c.kv, store.KeyPosts, &allPosts); err != nil {
		return false
	}
	for _, p := range allPosts[channelID] {
		if p.ID == postID {
			return true
		}
	}
	return false
}
